package framework

// TestCase is a unit of test logic. Run is called exactly once, with a T that belongs to this case
// alone; it makes assertions through t, and may panic to signal an unexpected condition.
type TestCase interface {
	Run(t *T)
}

// TestFunc adapts an ordinary function to the TestCase interface.
type TestFunc func(t *T)

func (f TestFunc) Run(t *T) { f(t) }

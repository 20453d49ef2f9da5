package selftest

import (
	"runtime"

	"github.com/launchdarkly/unit-harness/framework"
)

type failingCase struct{}

func init() {
	framework.Register("Failing tests", failingCase{})
}

// Run fails every kind of assertion once, then calls a nil function, which is a fatal fault.
func (failingCase) Run(t *framework.T) {
	t.True(false)
	t.False(true)
	t.Equal(1+1, 3)
	t.AlmostEqual(1, 1.5, 0.4)
	t.StringsEqual("foo", string([]byte("bar")))
	v := []int{0, 1}
	framework.Panics[runtime.Error](t, func() { _ = v[1] })
	var fn func()
	fn()
	t.True(true)
}

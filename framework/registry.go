package framework

import "sync"

// Entry is a registered test case together with its display name.
type Entry struct {
	Name string
	Case TestCase
}

// Registry is an ordered, append-only list of test cases. The order of registration is the order
// of execution.
type Registry struct {
	entries []Entry
	lock    sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a test case. It is meant to be called from an init function; a nil case or an
// empty name is a mistake in the test program and causes a panic.
func (r *Registry) Register(name string, tc TestCase) {
	if name == "" {
		panic("a test case was registered without a name")
	}
	if tc == nil {
		panic("test case \"" + name + "\" was registered with a nil TestCase")
	}
	r.lock.Lock()
	r.entries = append(r.entries, Entry{Name: name, Case: tc})
	r.lock.Unlock()
}

func (r *Registry) RegisterFunc(name string, fn func(t *T)) {
	if fn == nil {
		r.Register(name, nil)
		return
	}
	r.Register(name, TestFunc(fn))
}

// All returns a copy of the registered entries in registration order.
func (r *Registry) All() []Entry {
	r.lock.Lock()
	ret := append([]Entry(nil), r.entries...)
	r.lock.Unlock()
	return ret
}

func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.entries)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Register and RegisterFunc.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a test case to the process-wide registry.
func Register(name string, tc TestCase) {
	defaultRegistry.Register(name, tc)
}

// RegisterFunc adds a test function to the process-wide registry.
func RegisterFunc(name string, fn func(t *T)) {
	defaultRegistry.RegisterFunc(name, fn)
}

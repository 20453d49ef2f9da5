package crash

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exitRecorder struct {
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.codes = append(e.codes, code)
	runtime.Goexit()
}

// runGuarded calls Run on its own goroutine and returns the output, the exit statuses, and the
// value of any panic that Run let through.
func runGuarded(fn func(), useColor bool) (string, []int, interface{}) {
	var out bytes.Buffer
	var exits exitRecorder
	var escaped interface{}
	g := NewGuard(&out, exits.exit, useColor)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { escaped = recover() }()
		g.Run(fn)
	}()
	<-done
	return out.String(), exits.codes, escaped
}

func TestGuardRunWithoutPanic(t *testing.T) {
	ran := false
	out, codes, escaped := runGuarded(func() { ran = true }, false)

	assert.True(t, ran)
	assert.Empty(t, out)
	assert.Empty(t, codes)
	assert.Nil(t, escaped)
}

func TestGuardRunReportsFault(t *testing.T) {
	var nilNode *node
	out, codes, escaped := runGuarded(func() { _ = nilNode.next }, false)

	assert.Nil(t, escaped)
	assert.Equal(t, []int{128 + int(syscall.SIGSEGV)}, codes)
	assert.Contains(t, out, "Signal occurred: segmentation fault")
	assert.Contains(t, out, "nil pointer dereference")
	assert.Contains(t, out, "guard_test.go")
}

func TestGuardRunLabelsAndReraisesOtherPanics(t *testing.T) {
	out, codes, escaped := runGuarded(func() { panic("boom") }, false)

	assert.Empty(t, codes)
	assert.Equal(t, "boom", escaped)
	assert.Equal(t, "Uncaught panic: boom\n", out)
}

func TestGuardHandleSignal(t *testing.T) {
	var out bytes.Buffer
	var exits exitRecorder
	g := NewGuard(&out, exits.exit, false)

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.handleSignal(syscall.SIGTERM)
	}()
	<-done

	require.Equal(t, []int{128 + int(syscall.SIGTERM)}, exits.codes)
	assert.Contains(t, out.String(), "Signal occurred: terminated")
	assert.Contains(t, out.String(), "goroutine ")
}

func TestGuardColorsLabelWhenEnabled(t *testing.T) {
	out, _, _ := runGuarded(func() { panic("boom") }, true)

	assert.Equal(t, "\x1b[31;1mUncaught panic\x1b[0m: boom\n", out)
}

func TestGuardInstallEnablesPanicOnFault(t *testing.T) {
	g := NewGuard(&bytes.Buffer{}, func(int) {}, false)

	restore := g.Install()
	assert.True(t, debug.SetPanicOnFault(true))
	restore()
	assert.False(t, debug.SetPanicOnFault(false))
}

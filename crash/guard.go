// Package crash turns process-fatal conditions into the conventional outcome of a killed process:
// a "Signal occurred" diagnostic with a stack trace, then exit status 128 plus the signal number.
//
// The Go runtime turns nil dereferences and similar faults into panics, which would otherwise be
// indistinguishable from ordinary test crashes. Guard.Run sits at the outermost level of the
// program and catches those; a test runner that isolates ordinary panics must let faults through
// (see IsFault).
package crash

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/fatih/color"
)

const maxStackSize = 1 << 20

// Guard reports faults and termination signals and ends the process.
type Guard struct {
	output     io.Writer
	exit       func(int)
	errorColor *color.Color
}

// NewGuard creates a Guard that writes to output (os.Stderr if nil) and terminates with exit
// (os.Exit if nil).
func NewGuard(output io.Writer, exit func(int), useColor bool) *Guard {
	if output == nil {
		output = os.Stderr
	}
	if exit == nil {
		exit = os.Exit
	}
	c := color.New(color.FgRed, color.Bold)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return &Guard{output: output, exit: exit, errorColor: c}
}

// Install makes memory faults in the calling goroutine recoverable, and starts handling SIGINT,
// SIGTERM and SIGQUIT. The returned function undoes both.
func (g *Guard) Install() (restore func()) {
	oldPanicOnFault := debug.SetPanicOnFault(true)

	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(signals, terminationSignals...)
	go func() {
		select {
		case s := <-signals:
			if sig, ok := s.(syscall.Signal); ok {
				g.handleSignal(sig)
			}
		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
		debug.SetPanicOnFault(oldPanicOnFault)
	}
}

// Run calls fn. If fn panics with a fault, the fault is reported and the process exits with
// 128 plus the signal number. Any other panic is labeled as uncaught and then raised again, so
// that the Go runtime (or an attached debugger) handles it as an unrecovered panic.
func (g *Guard) Run(fn func()) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if fault, ok := Classify(recovered); ok {
			g.reportFault(fault, debug.Stack())
			g.exit(fault.ExitCode())
			return
		}
		fmt.Fprintf(g.output, "%s: %v\n", g.errorColor.Sprint("Uncaught panic"), recovered)
		panic(recovered)
	}()
	fn()
}

func (g *Guard) reportFault(fault Fault, stack []byte) {
	fmt.Fprintf(g.output, "%s: %s\n", g.errorColor.Sprint("Signal occurred"), fault.Description())
	fmt.Fprintf(g.output, "%v\n", fault.Cause)
	g.output.Write(stack)
}

func (g *Guard) handleSignal(sig syscall.Signal) {
	fmt.Fprintf(g.output, "%s: %s\n", g.errorColor.Sprint("Signal occurred"), describeSignal(sig))
	buf := make([]byte, maxStackSize)
	g.output.Write(buf[:runtime.Stack(buf, true)])
	g.exit(128 + int(sig))
}

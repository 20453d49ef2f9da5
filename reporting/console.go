// Package reporting contains the TestLogger implementations that present a run to the user.
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/launchdarkly/unit-harness/framework"
	"github.com/launchdarkly/unit-harness/logging"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const debugPrefix = "    DEBUG "

// ConsoleTestLogger writes human-readable progress to Out and diagnostics to Err.
type ConsoleTestLogger struct {
	Out io.Writer
	Err io.Writer

	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	// PanicStacks adds the stack trace to the report of a crashed case.
	PanicStacks bool
	// RerunHint, if set, is printed after a crashed case as a command for reproducing the crash.
	RerunHint string

	outColors streamColors
	errColors streamColors
}

type streamColors struct {
	success *color.Color
	failure *color.Color
}

func newStreamColors(enabled bool) streamColors {
	c := streamColors{
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
	}
	for _, cc := range []*color.Color{c.success, c.failure} {
		if enabled {
			cc.EnableColor()
		} else {
			cc.DisableColor()
		}
	}
	return c
}

// NewConsoleTestLogger creates a logger for the given streams. If allowColor is true, each stream
// is colored only if it is a terminal.
func NewConsoleTestLogger(out, errOut io.Writer, allowColor bool) *ConsoleTestLogger {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &ConsoleTestLogger{
		Out:       out,
		Err:       errOut,
		outColors: newStreamColors(allowColor && IsTerminal(out)),
		errColors: newStreamColors(allowColor && IsTerminal(errOut)),
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *ConsoleTestLogger) CaseStarted(name string) {
	fmt.Fprintf(c.Out, " * %s\n", name)
}

func (c *ConsoleTestLogger) AssertionFailed(name string, failure framework.AssertionFailure) {
	fmt.Fprintf(c.Err, "   %s in `%s' at %s line %d:\n", c.errColors.failure.Sprint("ERROR"),
		failure.Location.Function, failure.Location.File, failure.Location.Line)
	for _, line := range failure.Lines {
		fmt.Fprintf(c.Err, "     %s\n", line)
	}
}

func (c *ConsoleTestLogger) CasePanicked(name string, value interface{}, stack []byte) {
	fmt.Fprintf(c.Err, "   %s: %v\n", c.errColors.failure.Sprint("Panic occurred"), value)
	if c.PanicStacks {
		c.Err.Write(stack)
	}
	if c.RerunHint != "" {
		fmt.Fprintf(c.Err, "   re-run with: %s\n", c.RerunHint)
	}
}

func (c *ConsoleTestLogger) CaseFinished(result framework.CaseResult, debugOutput logging.CapturedOutput) {
	failed := !result.Passed()
	if failed {
		fmt.Fprintf(c.Out, "   Result: %s (%d of %d assertions passed)\n",
			c.outColors.failure.Sprint("FAIL"), result.Successful, result.Total)
	} else {
		fmt.Fprintf(c.Out, "   Result: %s (%d assertions passed)\n",
			c.outColors.success.Sprint("SUCCESS"), result.Total)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, debugPrefix)
	}
}

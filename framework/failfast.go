package framework

import (
	"fmt"
	"io"
	"os"
)

const failFastNotice = "Exiting immediately because failfast = true."

// FailFastPolicy decides what happens after a failed assertion. When enabled, the first failure
// ends the entire process with status 1; otherwise it does nothing.
type FailFastPolicy struct {
	enabled bool
	output  io.Writer
	exit    func(int)
}

// NewFailFastPolicy creates a policy. A nil output means os.Stderr and a nil exit means os.Exit.
func NewFailFastPolicy(enabled bool, output io.Writer, exit func(int)) FailFastPolicy {
	if output == nil {
		output = os.Stderr
	}
	if exit == nil {
		exit = os.Exit
	}
	return FailFastPolicy{enabled: enabled, output: output, exit: exit}
}

func (p FailFastPolicy) Enabled() bool { return p.enabled }

// OnFailure must be called immediately after an assertion has failed.
func (p FailFastPolicy) OnFailure() {
	if !p.enabled {
		return
	}
	fmt.Fprintln(p.output, failFastNotice)
	p.exit(1)
}

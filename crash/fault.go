package crash

import (
	"fmt"
	"runtime"
	"strings"
	"syscall"
)

// Fault is a panic that stands for a condition the process must not survive, such as an invalid
// memory access. It is reported the way the operating system signal behind it would be.
type Fault struct {
	Signal syscall.Signal
	Cause  interface{}
}

// ExitCode is the conventional status of a process killed by the fault's signal.
func (f Fault) ExitCode() int {
	return 128 + int(f.Signal)
}

// Description is the signal's text, e.g. "segmentation fault (SIGSEGV)".
func (f Fault) Description() string {
	return describeSignal(f.Signal)
}

func describeSignal(s syscall.Signal) string {
	if name := signalName(s); name != "" {
		return fmt.Sprintf("%s (%s)", s, name)
	}
	return s.String()
}

type addressError interface {
	Addr() uintptr
}

// Classify decides whether a recovered panic value is a fault. Memory access errors, including
// those raised for unmapped addresses once debug.SetPanicOnFault is on, map to SIGSEGV; integer
// division by zero and overflow map to SIGFPE. Anything else is an ordinary panic.
func Classify(recovered interface{}) (Fault, bool) {
	rerr, ok := recovered.(runtime.Error)
	if !ok {
		return Fault{}, false
	}
	if _, ok := rerr.(addressError); ok {
		return Fault{Signal: sigSEGV, Cause: recovered}, true
	}
	msg := rerr.Error()
	switch {
	case strings.Contains(msg, "invalid memory address"):
		return Fault{Signal: sigSEGV, Cause: recovered}, true
	case strings.Contains(msg, "integer divide by zero"), strings.Contains(msg, "integer overflow"):
		return Fault{Signal: sigFPE, Cause: recovered}, true
	}
	return Fault{}, false
}

// IsFault reports whether Classify would treat the value as a fault. It fits
// framework.RunnerConfig.Fatal.
func IsFault(recovered interface{}) bool {
	_, ok := Classify(recovered)
	return ok
}

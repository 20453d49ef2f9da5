//go:build !unix

package crash

import (
	"os"
	"syscall"
)

const (
	sigSEGV = syscall.SIGSEGV
	sigFPE  = syscall.SIGFPE
)

var terminationSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func signalName(syscall.Signal) string {
	return ""
}

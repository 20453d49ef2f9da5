//go:build unix

package crash

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	sigSEGV = unix.SIGSEGV
	sigFPE  = unix.SIGFPE
)

var terminationSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGQUIT}

func signalName(s syscall.Signal) string {
	return unix.SignalName(s)
}

//go:build !windows

package integration

import (
	"os"
	"syscall"
)

func terminationSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

func sendSIGTSTP(proc *os.Process) error {
	return proc.Signal(syscall.SIGTSTP)
}

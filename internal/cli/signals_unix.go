//go:build !windows

package cli

import (
	"os"
	"syscall"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

// pauseSignals toggle a headless run instead of suspending the process.
func pauseSignals() []os.Signal {
	return []os.Signal{syscall.SIGTSTP}
}

func isPauseSignal(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

//go:build windows

package cli

import (
	"os"
	"syscall"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}
}

func pauseSignals() []os.Signal {
	return nil
}

func isPauseSignal(os.Signal) bool {
	return false
}

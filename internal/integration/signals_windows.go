//go:build windows

package integration

import (
	"errors"
	"os"
)

// Windows cannot deliver console signals to another process through
// os.Process.Signal, so the signal tests skip there.
func terminationSignals() []os.Signal {
	return nil
}

func sendSIGTSTP(*os.Process) error {
	return errors.New("SIGTSTP not supported on Windows")
}

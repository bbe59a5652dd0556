package util

import (
	"fmt"
	"os/exec"
)

// LookupCommand resolves name in PATH and returns its absolute path.
func LookupCommand(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty command name")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}

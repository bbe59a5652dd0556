//go:build darwin

package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// caffeinateStopTimeout bounds how long Stop waits for caffeinate after SIGTERM.
const caffeinateStopTimeout = 500 * time.Millisecond

// darwinKeepAlive holds a caffeinate child process for the session lifetime.
type darwinKeepAlive struct {
	mu       sync.Mutex
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	waitDone chan struct{}
	logger   *zap.Logger
}

// Start spawns caffeinate preventing display, idle and system sleep.
func (k *darwinKeepAlive) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cmd != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	cmd, err := helperCommand(ctx, "caffeinate", "-d", "-i", "-m", "-s")
	if err != nil {
		cancel()
		return fmt.Errorf("darwin: %w", err)
	}
	k.cancel = cancel
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		k.cancel()
		return fmt.Errorf("darwin: failed to start caffeinate: %w", err)
	}

	k.cmd = cmd
	k.waitDone = make(chan struct{})
	go func(done chan struct{}) {
		_ = cmd.Wait()
		close(done)
	}(k.waitDone)

	k.logger.Debug("caffeinate started", zap.Int("pid", cmd.Process.Pid))
	return nil
}

// Stop terminates caffeinate, escalating to SIGKILL if it lingers.
func (k *darwinKeepAlive) Stop() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cmd == nil {
		return nil
	}

	pid := k.cmd.Process.Pid
	var err error
	if sigErr := k.cmd.Process.Signal(syscall.SIGTERM); sigErr != nil && !errors.Is(sigErr, os.ErrProcessDone) {
		k.logger.Debug("SIGTERM to caffeinate failed", zap.Int("pid", pid), zap.Error(sigErr))
	}

	select {
	case <-k.waitDone:
	case <-time.After(caffeinateStopTimeout):
		k.logger.Warn("caffeinate did not exit, sending SIGKILL", zap.Int("pid", pid))
		if killErr := syscall.Kill(-pid, syscall.SIGKILL); killErr != nil {
			err = fmt.Errorf("darwin: failed to kill caffeinate (pid %d): %w", pid, killErr)
		}
	}

	k.cancel()
	k.cmd = nil
	k.cancel = nil
	k.waitDone = nil
	return err
}

// NewKeepAlive creates the macOS keep-awake guard.
func NewKeepAlive() (KeepAlive, error) {
	return &darwinKeepAlive{logger: zap.L().Named("keepawake")}, nil
}

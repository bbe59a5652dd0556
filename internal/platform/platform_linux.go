//go:build linux

package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// inhibitor is one Linux sleep prevention method.
type inhibitor interface {
	Name() string
	Activate(ctx context.Context) error
	Deactivate() error
}

// systemdInhibitor holds a systemd-inhibit lock for the session lifetime.
type systemdInhibitor struct {
	cmd *exec.Cmd
}

func (s *systemdInhibitor) Name() string { return "systemd-inhibit" }

func (s *systemdInhibitor) Activate(ctx context.Context) error {
	cmd, err := helperCommand(ctx, "systemd-inhibit",
		"--what=idle:sleep",
		"--who=autoclick",
		"--why=Click session in progress",
		"--mode=block",
		"sh", "-c", "while true; do sleep 1; done")
	if err != nil {
		return err
	}
	s.cmd = cmd
	if err := s.cmd.Start(); err != nil {
		s.cmd = nil
		return fmt.Errorf("failed to start systemd-inhibit: %w", err)
	}
	return nil
}

func (s *systemdInhibitor) Deactivate() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	err := s.cmd.Process.Kill()
	_ = s.cmd.Wait()
	s.cmd = nil
	return err
}

// xsetInhibitor disables the X11 screensaver and DPMS.
type xsetInhibitor struct{}

func (x *xsetInhibitor) Name() string { return "xset" }

func (x *xsetInhibitor) Activate(ctx context.Context) error {
	if os.Getenv("DISPLAY") == "" {
		return errors.New("xset: no X11 display")
	}
	cmd, err := helperCommand(ctx, "xset", "s", "off", "-dpms")
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (x *xsetInhibitor) Deactivate() error {
	return exec.Command("xset", "s", "on", "+dpms").Run()
}

func buildInhibitors() []inhibitor {
	inhibitors := []inhibitor{&systemdInhibitor{}}
	if !strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		inhibitors = append(inhibitors, &xsetInhibitor{})
	}
	return inhibitors
}

// linuxKeepAlive activates every inhibitor that works on this system.
type linuxKeepAlive struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	active []inhibitor
	logger *zap.Logger
}

// Start activates inhibitors in priority order. It fails only when none work.
func (k *linuxKeepAlive) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	var errs []error
	for _, inh := range buildInhibitors() {
		if err := inh.Activate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", inh.Name(), err))
			continue
		}
		k.logger.Debug("inhibitor active", zap.String("method", inh.Name()))
		k.active = append(k.active, inh)
	}
	if len(k.active) == 0 {
		cancel()
		return fmt.Errorf("linux: no sleep inhibitor available: %w", errors.Join(append(errs, ErrUnsupported)...))
	}

	k.cancel = cancel
	return nil
}

// Stop deactivates inhibitors in reverse order.
func (k *linuxKeepAlive) Stop() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancel == nil {
		return nil
	}

	var errs []error
	for i := len(k.active) - 1; i >= 0; i-- {
		if err := k.active[i].Deactivate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k.active[i].Name(), err))
		}
	}
	k.cancel()
	k.cancel = nil
	k.active = nil
	return errors.Join(errs...)
}

// NewKeepAlive creates the Linux keep-awake guard.
func NewKeepAlive() (KeepAlive, error) {
	return &linuxKeepAlive{logger: zap.L().Named("keepawake")}, nil
}

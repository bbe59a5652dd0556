//go:build windows

package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
	esContinuous      = 0x80000000

	// executionStateRefresh re-asserts the execution state periodically.
	executionStateRefresh = 30 * time.Second
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32.NewProc("SetThreadExecutionState")
)

func setExecutionState(flags uintptr) error {
	r1, _, err := procSetThreadExecutionState.Call(flags)
	if r1 == 0 {
		return fmt.Errorf("windows: SetThreadExecutionState failed: %w", err)
	}
	return nil
}

// windowsKeepAlive asserts the display and system execution state.
//
// SetThreadExecutionState is per-thread, so the refresh goroutine is the only
// place the state is set while running.
type windowsKeepAlive struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger
}

// Start begins asserting the execution state until Stop or ctx is done.
func (k *windowsKeepAlive) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancel != nil {
		return nil
	}

	if err := procSetThreadExecutionState.Find(); err != nil {
		return fmt.Errorf("windows: %w", ErrUnsupported)
	}

	ctx, k.cancel = context.WithCancel(ctx)
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		flags := uintptr(esSystemRequired | esDisplayRequired | esContinuous)
		if err := setExecutionState(flags); err != nil {
			k.logger.Warn("failed to set execution state", zap.Error(err))
		}
		ticker := time.NewTicker(executionStateRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				if err := setExecutionState(esContinuous); err != nil {
					k.logger.Warn("failed to clear execution state", zap.Error(err))
				}
				return
			case <-ticker.C:
				_ = setExecutionState(flags)
			}
		}
	}()
	return nil
}

// Stop clears the execution state.
func (k *windowsKeepAlive) Stop() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancel == nil {
		return nil
	}
	k.cancel()
	k.wg.Wait()
	k.cancel = nil
	return nil
}

// NewKeepAlive creates the Windows keep-awake guard.
func NewKeepAlive() (KeepAlive, error) {
	return &windowsKeepAlive{logger: zap.L().Named("keepawake")}, nil
}

package clicker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCleanupTimeout bounds a shutdown when no timeout is given.
const DefaultCleanupTimeout = 5 * time.Second

// CleanupManager runs registered shutdown steps once, newest first, within
// a timeout.
type CleanupManager struct {
	mu      sync.Mutex
	steps   []cleanupStep
	timeout time.Duration
	logger  *zap.Logger
	once    sync.Once
	err     error
}

type cleanupStep struct {
	name string
	fn   func() error
}

// NewCleanupManager creates a cleanup manager with the given timeout.
func NewCleanupManager(timeout time.Duration, logger *zap.Logger) *CleanupManager {
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupManager{timeout: timeout, logger: logger.Named("cleanup")}
}

// Register adds a named shutdown step.
func (cm *CleanupManager) Register(name string, fn func() error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.steps = append(cm.steps, cleanupStep{name: name, fn: fn})
}

// RegisterEngine terminates c and waits for its worker on shutdown.
func (cm *CleanupManager) RegisterEngine(c *Clicker) {
	cm.Register("click engine", func() error {
		c.Terminate()
		ctx, cancel := context.WithTimeout(context.Background(), IdlePoll*5)
		defer cancel()
		// A worker that was never launched has nothing to wait for.
		if !c.launched.Load() {
			return nil
		}
		return c.Wait(ctx)
	})
}

// Execute runs every step once. Later calls return the first result.
func (cm *CleanupManager) Execute() error {
	cm.once.Do(func() {
		cm.err = cm.execute()
	})
	return cm.err
}

func (cm *CleanupManager) execute() error {
	cm.mu.Lock()
	steps := make([]cleanupStep, len(cm.steps))
	copy(steps, cm.steps)
	cm.mu.Unlock()

	if len(steps) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := len(steps) - 1; i >= 0; i-- {
			step := steps[i]
			func() {
				defer func() {
					if r := recover(); r != nil {
						record(fmt.Errorf("%s: panic during cleanup: %v", step.name, r))
						cm.logger.Error("panic during cleanup", zap.String("step", step.name), zap.Any("panic", r))
					}
				}()
				if err := step.fn(); err != nil {
					record(fmt.Errorf("%s: %w", step.name, err))
					cm.logger.Warn("cleanup step failed", zap.String("step", step.name), zap.Error(err))
					return
				}
				cm.logger.Debug("cleaned up", zap.String("step", step.name))
			}()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		cm.logger.Warn("cleanup timed out", zap.Duration("timeout", cm.timeout))
		record(fmt.Errorf("cleanup timeout exceeded after %v", cm.timeout))
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

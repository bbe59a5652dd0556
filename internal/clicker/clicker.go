// Package clicker implements the click engine: a single worker goroutine
// that decides when, where and how each click happens, and the lifecycle
// controls used by the surrounding application.
package clicker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stigoleg/autoclick/internal/humanize"
	"github.com/stigoleg/autoclick/internal/platform"
)

// IdlePoll is how often a stopped worker checks for a new run or termination.
const IdlePoll = 100 * time.Millisecond

// ErrTerminated is returned by Start once Terminate has been called.
var ErrTerminated = errors.New("clicker: engine terminated")

// StopReason tells the auto-stop callback why a run ended.
type StopReason int

const (
	StopRequested StopReason = iota
	StopLimitReached
	StopTargetLost
)

func (r StopReason) String() string {
	switch r {
	case StopLimitReached:
		return "click limit reached"
	case StopTargetLost:
		return "target window lost"
	default:
		return "stopped"
	}
}

// Health represents the runtime health of the click backend.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Clock abstracts time for the worker loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Option configures a Clicker.
type Option func(*Clicker)

// WithLogger sets the logger. The default is the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Clicker) { c.logger = l }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Clicker) { c.clock = clock }
}

// WithRand replaces the random source. It is only used from the worker.
func WithRand(r humanize.Rand) Option {
	return func(c *Clicker) { c.rnd = r }
}

// WithAutoStop registers fn to be called once each time the engine stops
// itself, either on reaching the click limit or on losing its target.
// fn runs on the worker goroutine and may call Start, Stop or Terminate.
func WithAutoStop(fn func(StopReason)) Option {
	return func(c *Clicker) { c.onAutoStop = fn }
}

// WithSessionGuard keeps g started for as long as the engine is running.
func WithSessionGuard(g platform.KeepAlive) Option {
	return func(c *Clicker) { c.guard = g }
}

// Clicker is the click engine.
//
// Start, Stop and Terminate may be called from any goroutine. They only flip
// flags the worker reads at the top of each iteration, so a change takes
// effect once the worker's current sleep finishes: at most IdlePoll when
// stopped, at most the current sampled delay or pause when running.
type Clicker struct {
	cfg        Config
	pointer    platform.Pointer
	validator  platform.TargetValidator
	clock      Clock
	rnd        humanize.Rand
	logger     *zap.Logger
	onAutoStop func(StopReason)
	guard      platform.KeepAlive

	// Control side.
	mu          sync.Mutex
	guardCancel context.CancelFunc
	launched    atomic.Bool
	done        chan struct{}

	// Shared flags, written by the control side or by the worker on auto-stop.
	running    atomic.Bool
	alive      atomic.Bool
	generation atomic.Uint64
	clickCount atomic.Int64
	failCount  atomic.Int64
	attempted  atomic.Bool

	// Worker-owned per-run state.
	src     *humanize.Source
	jitter  *humanize.Jitter
	fatigue *humanize.Fatigue
	pauses  *humanize.PauseScheduler
	runGen  uint64
	runLog  *zap.Logger
}

// New validates cfg and builds an idle engine driving pointer. When
// cfg.Window is set, pointer must also implement platform.TargetValidator.
// The worker is not started; call Run in its own goroutine.
func New(cfg Config, pointer platform.Pointer, opts ...Option) (*Clicker, error) {
	if pointer == nil {
		return nil, errors.New("clicker: pointer backend is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("clicker: invalid configuration: %w", err)
	}

	c := &Clicker{
		cfg:     cfg,
		pointer: pointer,
		clock:   systemClock{},
		logger:  zap.L().Named("clicker"),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if cfg.Window != 0 {
		v, ok := pointer.(platform.TargetValidator)
		if !ok {
			return nil, fmt.Errorf("clicker: backend cannot verify window %#x: %w", uintptr(cfg.Window), platform.ErrTargetLost)
		}
		c.validator = v
	}

	c.src = humanize.NewSource(c.rnd)
	c.jitter = humanize.NewJitter(c.src, cfg.Spread, cfg.Drift, cfg.driftEnabled())
	c.fatigue = humanize.NewFatigue(cfg.Fatigue)
	c.pauses = humanize.NewPauseScheduler(cfg.Pause, c.src)
	c.runLog = c.logger
	c.alive.Store(true)
	return c, nil
}

// Start begins a new run, resetting the click count and every per-run model.
// It is a no-op while already running. A bound window that no longer exists
// is reported here instead of inside the loop.
func (c *Clicker) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive.Load() {
		return ErrTerminated
	}
	if c.running.Load() {
		return nil
	}
	if c.validator != nil && !c.validator.TargetValid() {
		return fmt.Errorf("clicker: start: window %#x: %w", uintptr(c.cfg.Window), platform.ErrTargetLost)
	}

	c.clickCount.Store(0)
	c.failCount.Store(0)
	c.attempted.Store(false)
	c.generation.Add(1)
	c.startGuardLocked()
	c.running.Store(true)

	c.logger.Info("clicking started",
		zap.Stringer("button", c.cfg.Button),
		zap.Stringer("click_type", c.cfg.ClickType),
		zap.Int("limit", c.cfg.ClickLimit),
		zap.Bool("humanize", c.cfg.Humanize))
	return nil
}

// Stop ends the current run. The worker keeps idling for a later Start.
func (c *Clicker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked(StopRequested)
}

// Terminate stops the engine permanently. The worker exits after its current
// sleep; use Done or Wait to observe that.
func (c *Clicker) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.haltLocked(StopRequested)
	if c.alive.Swap(false) {
		c.logger.Info("engine terminated", zap.Int64("clicks", c.clickCount.Load()))
	}
}

// haltLocked clears the running flag and reports whether it was set.
func (c *Clicker) haltLocked(reason StopReason) bool {
	if !c.running.Swap(false) {
		return false
	}
	c.stopGuardLocked()
	c.logger.Info("clicking stopped",
		zap.Stringer("reason", reason),
		zap.Int64("clicks", c.clickCount.Load()))
	return true
}

// autoStop stops the run from the worker and notifies the collaborator once.
// A run restarted while the worker was mid-tick is left alone.
func (c *Clicker) autoStop(reason StopReason) {
	c.mu.Lock()
	stopped := c.generation.Load() == c.runGen && c.haltLocked(reason)
	c.mu.Unlock()

	if stopped && c.onAutoStop != nil {
		c.onAutoStop(reason)
	}
}

func (c *Clicker) startGuardLocked() {
	if c.guard == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := c.guard.Start(ctx); err != nil {
		cancel()
		c.logger.Warn("keep-awake guard unavailable", zap.Error(err))
		return
	}
	c.guardCancel = cancel
}

func (c *Clicker) stopGuardLocked() {
	if c.guardCancel == nil {
		return
	}
	if err := c.guard.Stop(); err != nil {
		c.logger.Warn("failed to stop keep-awake guard", zap.Error(err))
	}
	c.guardCancel()
	c.guardCancel = nil
}

// Run is the worker loop. It blocks until Terminate and must be called at
// most once; further calls return immediately.
func (c *Clicker) Run() {
	if !c.launched.CompareAndSwap(false, true) {
		return
	}
	defer close(c.done)

	for c.alive.Load() {
		if !c.running.Load() {
			c.clock.Sleep(IdlePoll)
			continue
		}
		if gen := c.generation.Load(); gen != c.runGen {
			c.resetRun(gen)
		}
		c.tick()
	}
}

// Done is closed when Run returns.
func (c *Clicker) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the worker has exited or ctx is done.
func (c *Clicker) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Clicker) resetRun(gen uint64) {
	c.runGen = gen
	c.clickCount.Store(0)
	c.jitter.Reset()
	c.fatigue.Reset()
	c.pauses.Reset()
	c.runLog = c.logger.With(zap.String("run_id", uuid.NewString()))
	c.runLog.Debug("run state reset", zap.Int("next_pause_at", c.pauses.Threshold()))
}

// tick performs one click action and the sleep that follows it.
func (c *Clicker) tick() {
	cfg := &c.cfg

	if c.validator != nil && !c.validator.TargetValid() {
		c.runLog.Warn("target window lost", zap.Uint64("window", uint64(cfg.Window)))
		c.autoStop(StopTargetLost)
		return
	}

	if cfg.fatigueEnabled() && c.fatigue.Observe(c.clock.Now()) {
		c.runLog.Debug("fatigue cooldown started", zap.Duration("cooldown", cfg.Fatigue.Cooldown))
	}

	performed, err := c.act()
	c.attempted.Store(true)
	if err != nil {
		if errors.Is(err, platform.ErrTargetLost) {
			c.runLog.Warn("target window lost", zap.Error(err))
			c.autoStop(StopTargetLost)
			return
		}
		fails := c.failCount.Add(1)
		c.runLog.Warn("click failed", zap.Error(err), zap.Int64("consecutive_failures", fails))
	} else {
		c.failCount.Store(0)
	}

	count := c.clickCount.Add(int64(performed))
	if cfg.ClickLimit > 0 && count >= int64(cfg.ClickLimit) {
		c.autoStop(StopLimitReached)
		return
	}

	var pause time.Duration
	if cfg.pauseEnabled() {
		if pause = c.pauses.Due(int(count)); pause > 0 {
			c.runLog.Debug("thinking pause", zap.Duration("pause", pause), zap.Int("next_at", c.pauses.Threshold()))
		}
	}

	delay := c.src.Interval(cfg.Interval) + pause
	if cfg.fatigueEnabled() {
		delay = c.fatigue.Floor(delay, c.clock.Now())
	}
	c.clock.Sleep(max(humanize.MinSleep, delay))
}

func (c *Clicker) act() (int, error) {
	if err := c.position(); err != nil {
		return 0, err
	}
	return c.execute()
}

// ClickCount returns the sub-clicks performed in the current or last run.
func (c *Clicker) ClickCount() int {
	return int(c.clickCount.Load())
}

// ClickLimit returns the configured limit, zero when unbounded.
func (c *Clicker) ClickLimit() int {
	return c.cfg.ClickLimit
}

// Running reports whether a run is in progress.
func (c *Clicker) Running() bool {
	return c.running.Load()
}

// Terminated reports whether Terminate has been called.
func (c *Clicker) Terminated() bool {
	return !c.alive.Load()
}

// Config returns the engine configuration.
func (c *Clicker) Config() Config {
	return c.cfg
}

// Health reports whether the backend has failed since the last success.
func (c *Clicker) Health() Health {
	if !c.attempted.Load() {
		return HealthUnknown
	}
	if c.failCount.Load() > 0 {
		return HealthFailed
	}
	return HealthOK
}

package cli

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/humanize"
	"github.com/stigoleg/autoclick/internal/platform"
	"github.com/stigoleg/autoclick/internal/platform/inject"
	"github.com/stigoleg/autoclick/internal/ui"
)

// cleanupTimeout bounds the shutdown sequence.
const cleanupTimeout = 3 * time.Second

// session is a constructed engine plus everything needed to tear it down.
type session struct {
	engine  *clicker.Clicker
	cleanup *clicker.CleanupManager
	summary ui.Summary
}

// newSession converts the settings, selects a backend and builds the engine.
// The worker is started here; the run itself is not.
func (a *app) newSession(opts ...clicker.Option) (*session, error) {
	logger := zap.L().Named("session")

	cfg, err := a.settings.Engine()
	if err != nil {
		return nil, err
	}

	pointer, mode, err := a.backend(&cfg)
	if err != nil {
		return nil, err
	}

	engineOpts := append([]clicker.Option{}, a.engineOpts...)
	if a.settings.KeepAwake && a.keepAwake != nil {
		guard, err := a.keepAwake()
		if err != nil {
			logger.Warn("keep-awake guard unavailable", zap.Error(err))
		} else {
			engineOpts = append(engineOpts, clicker.WithSessionGuard(guard))
		}
	}
	engineOpts = append(engineOpts, opts...)

	engine, err := clicker.New(cfg, pointer, engineOpts...)
	if err != nil {
		return nil, err
	}

	cm := clicker.NewCleanupManager(cleanupTimeout, logger)
	cm.RegisterEngine(engine)
	go engine.Run()

	logger.Info("engine ready", zap.String("mode", mode), zap.Stringer("button", cfg.Button))
	return &session{
		engine:  engine,
		cleanup: cm,
		summary: summarize(cfg, mode),
	}, nil
}

// backend picks the pointer implementation. Background mode captures the
// window under the configured point and binds cfg to it.
func (a *app) backend(cfg *clicker.Config) (platform.Pointer, string, error) {
	if !a.settings.Background.Enabled {
		if a.direct == nil {
			return nil, "", fmt.Errorf("direct pointer control: %w", platform.ErrUnsupported)
		}
		return a.direct(), "direct", nil
	}

	at, err := a.capturePoint()
	if err != nil {
		return nil, "", err
	}
	window, err := inject.Capture(at)
	if err != nil {
		return nil, "", fmt.Errorf("capture background window at %s: %w", at, err)
	}
	injector, err := inject.New(window, at)
	if err != nil {
		return nil, "", err
	}
	cfg.Window = window
	return injector, fmt.Sprintf("background %#x", uintptr(window)), nil
}

// capturePoint resolves where to look for the background window: the
// configured point, else the cursor.
func (a *app) capturePoint() (platform.Point, error) {
	p, err := a.settings.CapturePoint()
	if err != nil {
		return platform.Point{}, err
	}
	if p != nil {
		return *p, nil
	}
	at, err := inject.CursorPosition()
	if err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			return platform.Point{}, fmt.Errorf("background mode: %w", err)
		}
		return platform.Point{}, fmt.Errorf("read cursor position: %w", err)
	}
	return at, nil
}

func summarize(cfg clicker.Config, mode string) ui.Summary {
	interval := fmt.Sprintf("%s uniform", cfg.Interval.Base)
	if cfg.Interval.Spread > 0 {
		interval = fmt.Sprintf("%s + up to %s uniform", cfg.Interval.Base, cfg.Interval.Spread)
	}
	if cfg.Interval.Mode == humanize.IntervalExponential {
		interval = fmt.Sprintf("%s mean exponential", cfg.Interval.Mean)
	}

	target := "cursor"
	if cfg.Target != nil {
		target = cfg.Target.String()
	}
	if !cfg.Spread.IsZero() {
		target += fmt.Sprintf(" ±%d/%dpx", cfg.Spread.X, cfg.Spread.Y)
	}

	return ui.Summary{
		Button:    cfg.Button.String(),
		ClickType: cfg.ClickType.String(),
		Interval:  interval,
		Target:    target,
		Mode:      mode,
		Humanize:  cfg.Humanize,
	}
}


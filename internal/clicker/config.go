package clicker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stigoleg/autoclick/internal/humanize"
	"github.com/stigoleg/autoclick/internal/platform"
)

// ClickType selects how many sub-clicks one action performs.
type ClickType int

const (
	ClickSingle ClickType = iota
	ClickDouble
)

// Count returns the number of sub-clicks per action.
func (t ClickType) Count() int {
	if t == ClickDouble {
		return 2
	}
	return 1
}

func (t ClickType) String() string {
	if t == ClickDouble {
		return "double"
	}
	return "single"
}

// ParseClickType parses "single" or "double", case-insensitively.
func ParseClickType(s string) (ClickType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ClickSingle, nil
	case "double":
		return ClickDouble, nil
	default:
		return ClickSingle, fmt.Errorf("invalid click type %q: expected single or double", s)
	}
}

// Config is the immutable configuration of one engine instance.
type Config struct {
	Interval  humanize.IntervalConfig
	ClickType ClickType
	Button    platform.Button

	// Target is the fixed click position. Nil follows the live cursor.
	Target *platform.Point
	Spread humanize.Spread

	// ClickLimit stops the run once this many sub-clicks were performed.
	// Zero means unbounded.
	ClickLimit int

	// Humanize gates every sub-model below.
	Humanize bool
	Hold     humanize.HoldConfig
	Drift    humanize.DriftConfig
	Pause    humanize.PauseConfig
	Fatigue  humanize.FatigueConfig

	// Window is the captured background-injection target, zero for direct mode.
	Window platform.Window
}

// Default parameters.
const (
	DefaultInterval        = 100 * time.Millisecond
	DefaultExpMeanInterval = 313 * time.Millisecond

	DefaultHoldMean   = 133 * time.Millisecond
	DefaultHoldStdDev = 83 * time.Millisecond

	DefaultDriftStepMin  = -2.0
	DefaultDriftStepMax  = 1.0
	DefaultDriftResetMin = -2.0
	DefaultDriftResetMax = 2.0

	DefaultPauseMean      = 4000 * time.Millisecond
	DefaultPauseStdDev    = 1500 * time.Millisecond
	DefaultPauseMinClicks = 10
	DefaultPauseMaxClicks = 20

	DefaultFatigueThreshold   = 100 * time.Millisecond
	DefaultFatigueDuration    = 3000 * time.Millisecond
	DefaultFatigueCooldown    = 15000 * time.Millisecond
	DefaultFatigueMinInterval = 500 * time.Millisecond
)

// DefaultConfig returns a single left click every 100ms at the cursor, with
// every humanization sub-model enabled but the master switch off.
func DefaultConfig() Config {
	return Config{
		Interval: humanize.IntervalConfig{
			Mode: humanize.IntervalUniform,
			Base: DefaultInterval,
			Mean: DefaultExpMeanInterval,
		},
		ClickType: ClickSingle,
		Button:    platform.ButtonLeft,
		Hold: humanize.HoldConfig{
			Enabled: true,
			Mean:    DefaultHoldMean,
			StdDev:  DefaultHoldStdDev,
		},
		Drift: humanize.DriftConfig{
			Enabled:  true,
			StepMin:  DefaultDriftStepMin,
			StepMax:  DefaultDriftStepMax,
			ResetMin: DefaultDriftResetMin,
			ResetMax: DefaultDriftResetMax,
		},
		Pause: humanize.PauseConfig{
			Enabled:   true,
			Mean:      DefaultPauseMean,
			StdDev:    DefaultPauseStdDev,
			MinClicks: DefaultPauseMinClicks,
			MaxClicks: DefaultPauseMaxClicks,
		},
		Fatigue: humanize.FatigueConfig{
			Enabled:     true,
			Threshold:   DefaultFatigueThreshold,
			Duration:    DefaultFatigueDuration,
			Cooldown:    DefaultFatigueCooldown,
			MinInterval: DefaultFatigueMinInterval,
		},
	}
}

// Validate collects every configuration problem. Sub-model parameters are
// checked even when the sub-model is disabled so that a saved configuration
// can be enabled later without surprises.
func (c Config) Validate() error {
	var errs []error
	if err := c.Interval.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ClickType != ClickSingle && c.ClickType != ClickDouble {
		errs = append(errs, fmt.Errorf("unknown click type %d", c.ClickType))
	}
	if c.Button != platform.ButtonLeft && c.Button != platform.ButtonRight {
		errs = append(errs, fmt.Errorf("invalid mouse button %q", c.Button))
	}
	if c.ClickLimit < 0 {
		errs = append(errs, errors.New("click limit must not be negative"))
	}
	for _, v := range []interface{ Validate() error }{c.Spread, c.Hold, c.Drift, c.Pause, c.Fatigue} {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c Config) holdEnabled() bool { return c.Humanize && c.Hold.Enabled }
func (c Config) driftEnabled() bool { return c.Humanize && c.Drift.Enabled }
func (c Config) pauseEnabled() bool { return c.Humanize && c.Pause.Enabled }
func (c Config) fatigueEnabled() bool { return c.Humanize && c.Fatigue.Enabled }

package humanize

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// IntervalMode selects the statistical model for the delay between clicks.
type IntervalMode int

const (
	// IntervalUniform adds a bounded uniform spread to a fixed base interval.
	IntervalUniform IntervalMode = iota
	// IntervalExponential draws memoryless (Poisson process) gaps around a mean.
	IntervalExponential
)

func (m IntervalMode) String() string {
	switch m {
	case IntervalUniform:
		return "uniform"
	case IntervalExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// ParseIntervalMode parses "uniform" or "exponential", case-insensitively.
func ParseIntervalMode(s string) (IntervalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform":
		return IntervalUniform, nil
	case "exponential", "exp":
		return IntervalExponential, nil
	default:
		return IntervalUniform, fmt.Errorf("invalid interval mode %q: expected uniform or exponential", s)
	}
}

// IntervalConfig holds the parameters of both interval models.
type IntervalConfig struct {
	Mode IntervalMode
	// Base and Spread drive uniform mode: Base + U(0, Spread).
	Base   time.Duration
	Spread time.Duration
	// Mean drives exponential mode.
	Mean time.Duration
}

// Validate reports parameters that cannot produce a schedule.
func (c IntervalConfig) Validate() error {
	var errs []error
	if c.Spread < 0 {
		errs = append(errs, errors.New("interval spread must not be negative"))
	}
	switch c.Mode {
	case IntervalUniform:
		if c.Base <= 0 {
			errs = append(errs, errors.New("interval must be positive"))
		}
	case IntervalExponential:
		if c.Mean <= 0 {
			errs = append(errs, errors.New("exponential mean interval must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown interval mode %d", c.Mode))
	}
	return errors.Join(errs...)
}

// Interval returns the base delay before the next click, never below MinSleep.
func (s *Source) Interval(cfg IntervalConfig) time.Duration {
	var delay float64
	switch cfg.Mode {
	case IntervalExponential:
		mean := math.Max(Millis(MinSleep), Millis(cfg.Mean))
		// Unit is half-open, so 1-u is never zero.
		delay = -math.Log(1.0-s.Unit()) * mean
	default:
		delay = Millis(cfg.Base)
		if cfg.Spread > 0 {
			delay += s.Uniform(0, Millis(cfg.Spread))
		}
	}
	return max(MinSleep, FromMillis(delay))
}

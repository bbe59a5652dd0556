package humanize

import (
	"errors"
	"time"
)

// HoldConfig parameterizes how long a button stays pressed.
type HoldConfig struct {
	Enabled bool
	Mean    time.Duration
	StdDev  time.Duration
}

// Validate checks the hold-time distribution parameters.
func (c HoldConfig) Validate() error {
	var errs []error
	if c.StdDev < 0 {
		errs = append(errs, errors.New("hold time deviation must not be negative"))
	}
	if c.Enabled && c.Mean <= 0 {
		errs = append(errs, errors.New("hold time mean must be positive"))
	}
	return errors.Join(errs...)
}

// Hold returns a press duration from a Gaussian truncated at MinSleep.
func (s *Source) Hold(cfg HoldConfig) time.Duration {
	return s.PositiveGaussDuration(cfg.Mean, cfg.StdDev)
}

// DoubleClickGap returns the pause between the two presses of a double click.
func (s *Source) DoubleClickGap() time.Duration {
	return FromMillis(s.Uniform(Millis(DoubleClickGapMin), Millis(DoubleClickGapMax)))
}

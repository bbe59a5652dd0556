package humanize

import (
	"errors"
	"time"
)

// FatigueConfig parameterizes the rapid-fire cooldown model.
type FatigueConfig struct {
	Enabled bool
	// Threshold is the gap below which two clicks count as rapid.
	Threshold time.Duration
	// Duration is how much rapid clicking accumulates before a cooldown.
	Duration time.Duration
	// Cooldown is how long the cooldown lasts once triggered.
	Cooldown time.Duration
	// MinInterval is the delay floor while cooling down.
	MinInterval time.Duration
}

// Validate checks that every fatigue parameter is positive when enabled.
func (c FatigueConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.Threshold <= 0 {
		errs = append(errs, errors.New("fatigue threshold must be positive"))
	}
	if c.Duration <= 0 {
		errs = append(errs, errors.New("fatigue duration must be positive"))
	}
	if c.Cooldown <= 0 {
		errs = append(errs, errors.New("fatigue cooldown must be positive"))
	}
	if c.MinInterval <= 0 {
		errs = append(errs, errors.New("fatigue cooldown interval must be positive"))
	}
	return errors.Join(errs...)
}

// Fatigue tracks sustained rapid clicking and the resulting cooldown window.
type Fatigue struct {
	cfg FatigueConfig

	last        time.Time
	seen        bool
	jitter      time.Duration
	cooldownEnd time.Time
}

// NewFatigue creates a monitor with no history.
func NewFatigue(cfg FatigueConfig) *Fatigue {
	return &Fatigue{cfg: cfg}
}

// Reset forgets the previous click, the accumulated jitter and any cooldown.
func (f *Fatigue) Reset() {
	f.last = time.Time{}
	f.seen = false
	f.jitter = 0
	f.cooldownEnd = time.Time{}
}

// Observe records a click at now and reports whether it started a cooldown.
func (f *Fatigue) Observe(now time.Time) bool {
	if f.seen {
		delta := now.Sub(f.last)
		if delta < f.cfg.Threshold {
			f.jitter += delta
		} else {
			f.jitter = 0
		}
	}
	f.last = now
	f.seen = true

	if f.jitter >= f.cfg.Duration {
		f.cooldownEnd = now.Add(f.cfg.Cooldown)
		f.jitter = 0
		return true
	}
	return false
}

// CoolingDown reports whether now falls inside the cooldown window.
func (f *Fatigue) CoolingDown(now time.Time) bool {
	return now.Before(f.cooldownEnd)
}

// Floor raises delay to the cooldown minimum while cooling down.
func (f *Fatigue) Floor(delay time.Duration, now time.Time) time.Duration {
	if f.CoolingDown(now) {
		return max(delay, f.cfg.MinInterval)
	}
	return delay
}

// Accumulated returns the rapid-click time gathered so far.
func (f *Fatigue) Accumulated() time.Duration {
	return f.jitter
}

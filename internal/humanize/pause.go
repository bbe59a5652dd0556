package humanize

import (
	"errors"
	"time"
)

// PauseConfig parameterizes occasional "thinking" pauses.
type PauseConfig struct {
	Enabled   bool
	Mean      time.Duration
	StdDev    time.Duration
	MinClicks int
	MaxClicks int
}

// Validate checks the pause distribution and the click-count bounds.
func (c PauseConfig) Validate() error {
	var errs []error
	if c.StdDev < 0 {
		errs = append(errs, errors.New("thinking pause deviation must not be negative"))
	}
	if c.MinClicks > c.MaxClicks {
		errs = append(errs, errors.New("thinking pause min clicks must not exceed max clicks"))
	}
	if c.Enabled {
		if c.Mean <= 0 {
			errs = append(errs, errors.New("thinking pause mean must be positive"))
		}
		if c.MinClicks < 1 {
			errs = append(errs, errors.New("thinking pause min clicks must be at least 1"))
		}
	}
	return errors.Join(errs...)
}

// PauseScheduler decides after how many clicks the next pause happens.
type PauseScheduler struct {
	cfg  PauseConfig
	src  *Source
	next int
}

// NewPauseScheduler creates a scheduler with its first threshold drawn.
func NewPauseScheduler(cfg PauseConfig, src *Source) *PauseScheduler {
	p := &PauseScheduler{cfg: cfg, src: src}
	p.Reset()
	return p
}

// Reset draws a fresh threshold from [MinClicks, MaxClicks].
func (p *PauseScheduler) Reset() {
	p.next = p.src.IntRange(p.cfg.MinClicks, p.cfg.MaxClicks)
}

// Threshold returns the click count at which the next pause fires.
func (p *PauseScheduler) Threshold() int {
	return p.next
}

// Due returns the pause to add after clicks have been performed, or zero.
// When a pause fires the next threshold is rescheduled relative to clicks.
func (p *PauseScheduler) Due(clicks int) time.Duration {
	if clicks < p.next {
		return 0
	}
	pause := p.src.PositiveGaussDuration(p.cfg.Mean, p.cfg.StdDev)
	p.next = clicks + p.src.IntRange(p.cfg.MinClicks, p.cfg.MaxClicks)
	return pause
}

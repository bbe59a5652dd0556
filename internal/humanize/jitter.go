package humanize

import (
	"errors"
	"math"
)

// Spread is the maximum positional offset, in pixels, on each axis.
type Spread struct {
	X int
	Y int
}

// IsZero reports whether no positional offset is configured.
func (s Spread) IsZero() bool {
	return s.X <= 0 && s.Y <= 0
}

// Validate rejects negative ranges.
func (s Spread) Validate() error {
	if s.X < 0 || s.Y < 0 {
		return errors.New("position spread must not be negative")
	}
	return nil
}

// DriftConfig parameterizes the bounded random walk used instead of
// independent per-click offsets.
type DriftConfig struct {
	Enabled  bool
	StepMin  float64
	StepMax  float64
	ResetMin float64
	ResetMax float64
}

// Validate checks that the step and reset ranges are well ordered.
func (c DriftConfig) Validate() error {
	var errs []error
	if c.StepMin > c.StepMax {
		errs = append(errs, errors.New("drift step min must not exceed step max"))
	}
	if c.ResetMin > c.ResetMax {
		errs = append(errs, errors.New("drift reset min must not exceed reset max"))
	}
	return errors.Join(errs...)
}

// Jitter produces the per-click pixel offset around an anchor point.
//
// In drift mode the offset is a persistent random walk: every call adds a
// uniform step per axis and, once either axis leaves its spread range, both
// axes snap back to a fresh value from the reset range. Otherwise each call
// draws independent integer offsets in [-spread, spread].
type Jitter struct {
	src    *Source
	spread Spread
	cfg    DriftConfig
	drift  bool

	x float64
	y float64
}

// NewJitter creates a jitter generator. useDrift selects the random walk.
func NewJitter(src *Source, spread Spread, cfg DriftConfig, useDrift bool) *Jitter {
	return &Jitter{src: src, spread: spread, cfg: cfg, drift: useDrift}
}

// Reset clears the accumulated drift.
func (j *Jitter) Reset() {
	j.x, j.y = 0, 0
}

// Drift returns the accumulated drift value.
func (j *Jitter) Drift() (x, y float64) {
	return j.x, j.y
}

// Next returns the offset to apply to the anchor for this click.
// A zero spread always yields a zero offset.
func (j *Jitter) Next() (dx, dy int) {
	if j.spread.IsZero() {
		return 0, 0
	}
	if j.drift {
		return j.walk()
	}
	return j.independent(j.spread.X), j.independent(j.spread.Y)
}

func (j *Jitter) walk() (int, int) {
	j.x += j.src.Uniform(j.cfg.StepMin, j.cfg.StepMax)
	j.y += j.src.Uniform(j.cfg.StepMin, j.cfg.StepMax)

	// Both axes reset together when either overshoots.
	if math.Abs(j.x) > float64(j.spread.X) || math.Abs(j.y) > float64(j.spread.Y) {
		j.x = j.src.Uniform(j.cfg.ResetMin, j.cfg.ResetMax)
		j.y = j.src.Uniform(j.cfg.ResetMin, j.cfg.ResetMax)
	}

	// Truncation toward zero, not rounding.
	return int(j.x), int(j.y)
}

func (j *Jitter) independent(r int) int {
	if r <= 0 {
		return 0
	}
	return j.src.IntRange(-r, r)
}

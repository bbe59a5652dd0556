// Package humanize provides the statistical models used to make synthetic
// clicks look less mechanical: interval sampling, positional jitter and
// drift, hold times, thinking pauses and fatigue cooldowns.
package humanize

import (
	"time"
)

// Timing constants shared by the samplers.
const (
	// MinSleep is the smallest delay the engine ever sleeps for, so the
	// loop never busy-spins.
	MinSleep = time.Millisecond

	// DoubleClickGapMin and DoubleClickGapMax bound the pause between the
	// two halves of a double click when hold time is simulated.
	DoubleClickGapMin = 5 * time.Millisecond
	DoubleClickGapMax = 15 * time.Millisecond

	// maxResampleAttempts caps the reject-and-resample loop of truncated
	// Gaussian draws. After that many misses the floor value is returned.
	maxResampleAttempts = 100
)

// Rand is the subset of *rand.Rand used by the samplers.
// Float64 must return values in the half-open interval [0, 1).
type Rand interface {
	Float64() float64
	NormFloat64() float64
	Intn(n int) int
}

// Source draws from the distributions the click engine needs.
type Source struct {
	rnd Rand
}

// NewSource creates a new source backed by rnd.
func NewSource(rnd Rand) *Source {
	return &Source{rnd: rnd}
}

// Uniform returns a real value drawn uniformly from [a, b).
func (s *Source) Uniform(a, b float64) float64 {
	return a + (b-a)*s.rnd.Float64()
}

// IntRange returns an integer drawn uniformly from [lo, hi], both inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rnd.Intn(hi-lo+1)
}

// Unit returns a value in [0, 1).
func (s *Source) Unit() float64 {
	return s.rnd.Float64()
}

// Gauss returns a normally distributed value with the given mean and standard deviation.
func (s *Source) Gauss(mean, stdDev float64) float64 {
	return mean + stdDev*s.rnd.NormFloat64()
}

// PositiveGauss draws from N(mean, stdDev) and resamples until the value is
// at least floor. The number of attempts is bounded; a pathological
// parameter set (mean far below floor, tiny deviation) yields floor.
func (s *Source) PositiveGauss(mean, stdDev, floor float64) float64 {
	for i := 0; i < maxResampleAttempts; i++ {
		if v := s.Gauss(mean, stdDev); v >= floor {
			return v
		}
	}
	return floor
}

// PositiveGaussDuration is PositiveGauss for durations, truncated at MinSleep.
func (s *Source) PositiveGaussDuration(mean, stdDev time.Duration) time.Duration {
	return FromMillis(s.PositiveGauss(Millis(mean), Millis(stdDev), Millis(MinSleep)))
}

// Millis converts d into fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMillis converts fractional milliseconds into a duration.
func FromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

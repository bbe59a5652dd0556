package humanize

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// fixedRand returns the same values on every call.
type fixedRand struct {
	f    float64
	norm float64
	n    int
}

func (r fixedRand) Float64() float64     { return r.f }
func (r fixedRand) NormFloat64() float64 { return r.norm }
func (r fixedRand) Intn(int) int         { return r.n }

func newTestSource(seed int64) *Source {
	return NewSource(rand.New(rand.NewSource(seed)))
}

func TestIntervalUniform(t *testing.T) {
	src := newTestSource(42)
	cfg := IntervalConfig{Mode: IntervalUniform, Base: 100 * time.Millisecond, Spread: 50 * time.Millisecond}

	for i := 0; i < 1000; i++ {
		d := src.Interval(cfg)
		if d < 100*time.Millisecond || d >= 150*time.Millisecond {
			t.Fatalf("Interval() = %v, want within [100ms, 150ms)", d)
		}
	}
}

func TestIntervalUniformWithoutSpread(t *testing.T) {
	src := newTestSource(42)
	cfg := IntervalConfig{Mode: IntervalUniform, Base: 80 * time.Millisecond}

	for i := 0; i < 100; i++ {
		if d := src.Interval(cfg); d != 80*time.Millisecond {
			t.Fatalf("Interval() = %v, want 80ms", d)
		}
	}
}

func TestIntervalExponentialMean(t *testing.T) {
	src := newTestSource(7)
	cfg := IntervalConfig{Mode: IntervalExponential, Mean: 300 * time.Millisecond}

	const n = 20000
	var total float64
	for i := 0; i < n; i++ {
		total += Millis(src.Interval(cfg))
	}
	mean := total / n
	if math.Abs(mean-300) > 15 {
		t.Errorf("sample mean = %.1fms, want about 300ms", mean)
	}
}

func TestIntervalNeverBelowMinimum(t *testing.T) {
	tests := []struct {
		name string
		rnd  Rand
		cfg  IntervalConfig
	}{
		{
			name: "exponential with zero draw",
			rnd:  fixedRand{f: 0},
			cfg:  IntervalConfig{Mode: IntervalExponential, Mean: 300 * time.Millisecond},
		},
		{
			name: "exponential with degenerate mean",
			rnd:  fixedRand{f: 0.5},
			cfg:  IntervalConfig{Mode: IntervalExponential, Mean: 0},
		},
		{
			name: "uniform with zero base",
			rnd:  fixedRand{f: 0},
			cfg:  IntervalConfig{Mode: IntervalUniform},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := NewSource(tt.rnd).Interval(tt.cfg); d < MinSleep {
				t.Errorf("Interval() = %v, want at least %v", d, MinSleep)
			}
		})
	}
}

func TestParseIntervalMode(t *testing.T) {
	tests := []struct {
		input   string
		want    IntervalMode
		wantErr bool
	}{
		{input: "uniform", want: IntervalUniform},
		{input: "Exponential", want: IntervalExponential},
		{input: "", want: IntervalUniform},
		{input: "poisson", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseIntervalMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseIntervalMode(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseIntervalMode(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestIntRangeInclusive(t *testing.T) {
	src := newTestSource(1)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := src.IntRange(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("IntRange(-2, 2) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected all 5 values, saw %v", seen)
	}
	if got := src.IntRange(3, 3); got != 3 {
		t.Errorf("IntRange(3, 3) = %d, want 3", got)
	}
}

func TestPositiveGaussTruncates(t *testing.T) {
	src := newTestSource(3)
	for i := 0; i < 1000; i++ {
		if v := src.PositiveGauss(5, 10, 1); v < 1 {
			t.Fatalf("PositiveGauss() = %v, want >= 1", v)
		}
	}
}

func TestPositiveGaussFallsBackToFloor(t *testing.T) {
	src := newTestSource(3)
	if v := src.PositiveGauss(-1000, 1, 1); v != 1 {
		t.Errorf("PositiveGauss() = %v, want floor 1", v)
	}
	if d := src.PositiveGaussDuration(-time.Second, 0); d != MinSleep {
		t.Errorf("PositiveGaussDuration() = %v, want %v", d, MinSleep)
	}
}

func TestHoldAndGap(t *testing.T) {
	src := newTestSource(9)
	cfg := HoldConfig{Enabled: true, Mean: 150 * time.Millisecond}
	if d := src.Hold(cfg); d != 150*time.Millisecond {
		t.Errorf("Hold() with zero deviation = %v, want 150ms", d)
	}
	for i := 0; i < 100; i++ {
		gap := src.DoubleClickGap()
		if gap < DoubleClickGapMin || gap >= DoubleClickGapMax {
			t.Fatalf("DoubleClickGap() = %v, out of range", gap)
		}
	}
}

func TestJitterZeroSpread(t *testing.T) {
	j := NewJitter(newTestSource(1), Spread{}, DriftConfig{StepMin: -2, StepMax: 1}, true)
	for i := 0; i < 10; i++ {
		if dx, dy := j.Next(); dx != 0 || dy != 0 {
			t.Fatalf("Next() = (%d, %d), want (0, 0)", dx, dy)
		}
	}
}

func TestJitterIndependentRange(t *testing.T) {
	j := NewJitter(newTestSource(5), Spread{X: 3, Y: 0}, DriftConfig{}, false)
	for i := 0; i < 500; i++ {
		dx, dy := j.Next()
		if dx < -3 || dx > 3 {
			t.Fatalf("dx = %d, want within [-3, 3]", dx)
		}
		if dy != 0 {
			t.Fatalf("dy = %d, want 0 for zero Y range", dy)
		}
	}
	if x, y := j.Drift(); x != 0 || y != 0 {
		t.Errorf("independent jitter should not accumulate drift, got (%v, %v)", x, y)
	}
}

func TestJitterDriftTruncatesTowardZero(t *testing.T) {
	cfg := DriftConfig{Enabled: true, StepMin: -0.5, StepMax: -0.5, ResetMin: 0, ResetMax: 0}
	j := NewJitter(newTestSource(1), Spread{X: 5, Y: 5}, cfg, true)

	if dx, dy := j.Next(); dx != 0 || dy != 0 {
		t.Errorf("after one step offset = (%d, %d), want (0, 0)", dx, dy)
	}
	if dx, dy := j.Next(); dx != -1 || dy != -1 {
		t.Errorf("after two steps offset = (%d, %d), want (-1, -1)", dx, dy)
	}
}

func TestJitterDriftResetsBothAxes(t *testing.T) {
	cfg := DriftConfig{Enabled: true, StepMin: 0.6, StepMax: 0.6, ResetMin: 3, ResetMax: 3}
	j := NewJitter(newTestSource(1), Spread{X: 1, Y: 100}, cfg, true)

	j.Next()
	dx, dy := j.Next()
	if dx != 3 || dy != 3 {
		t.Errorf("offset after overshoot = (%d, %d), want both axes reset to 3", dx, dy)
	}

	j.Reset()
	if x, y := j.Drift(); x != 0 || y != 0 {
		t.Errorf("Drift() after Reset = (%v, %v), want zero", x, y)
	}
}

func TestJitterDriftIsCorrelated(t *testing.T) {
	cfg := DriftConfig{Enabled: true, StepMin: -2, StepMax: 1, ResetMin: -2, ResetMax: 2}
	j := NewJitter(newTestSource(11), Spread{X: 50, Y: 50}, cfg, true)

	prevX, _ := j.Drift()
	for i := 0; i < 20; i++ {
		j.Next()
		x, _ := j.Drift()
		if step := x - prevX; step < -2-1e-9 || step > 1+1e-9 {
			t.Fatalf("drift step %v outside [-2, 1]", step)
		}
		prevX = x
	}
}

func TestFatigueCooldown(t *testing.T) {
	cfg := FatigueConfig{
		Enabled:     true,
		Threshold:   100 * time.Millisecond,
		Duration:    300 * time.Millisecond,
		Cooldown:    time.Second,
		MinInterval: 500 * time.Millisecond,
	}
	f := NewFatigue(cfg)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	if f.Observe(now) {
		t.Fatal("first observation must not trigger a cooldown")
	}
	triggered := false
	for i := 0; i < 6; i++ {
		now = now.Add(50 * time.Millisecond)
		triggered = f.Observe(now)
	}
	if !triggered {
		t.Fatalf("expected cooldown after 300ms of rapid clicks, accumulated %v", f.Accumulated())
	}
	if f.Accumulated() != 0 {
		t.Errorf("accumulated jitter should reset on trigger, got %v", f.Accumulated())
	}
	if got := f.Floor(10*time.Millisecond, now); got != 500*time.Millisecond {
		t.Errorf("Floor() during cooldown = %v, want 500ms", got)
	}
	if got := f.Floor(800*time.Millisecond, now); got != 800*time.Millisecond {
		t.Errorf("Floor() must not shorten longer delays, got %v", got)
	}
	if got := f.Floor(10*time.Millisecond, now.Add(time.Second)); got != 10*time.Millisecond {
		t.Errorf("Floor() after cooldown = %v, want 10ms", got)
	}
}

func TestFatigueSlowClickResets(t *testing.T) {
	f := NewFatigue(FatigueConfig{Enabled: true, Threshold: 100 * time.Millisecond, Duration: time.Second, Cooldown: time.Second, MinInterval: time.Second})
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	f.Observe(now)
	f.Observe(now.Add(50 * time.Millisecond))
	if f.Accumulated() != 50*time.Millisecond {
		t.Fatalf("Accumulated() = %v, want 50ms", f.Accumulated())
	}
	f.Observe(now.Add(500 * time.Millisecond))
	if f.Accumulated() != 0 {
		t.Errorf("slow click should reset accumulation, got %v", f.Accumulated())
	}

	f.Reset()
	f.Observe(now.Add(time.Second))
	if f.Accumulated() != 0 {
		t.Errorf("first observation after Reset must not accumulate, got %v", f.Accumulated())
	}
}

func TestPauseScheduler(t *testing.T) {
	cfg := PauseConfig{Enabled: true, Mean: 4 * time.Second, MinClicks: 2, MaxClicks: 2}
	p := NewPauseScheduler(cfg, newTestSource(1))

	if p.Threshold() != 2 {
		t.Fatalf("Threshold() = %d, want 2", p.Threshold())
	}
	if d := p.Due(1); d != 0 {
		t.Errorf("Due(1) = %v, want 0", d)
	}
	if d := p.Due(2); d != 4*time.Second {
		t.Errorf("Due(2) = %v, want 4s", d)
	}
	if p.Threshold() != 4 {
		t.Errorf("Threshold() after pause = %d, want 4", p.Threshold())
	}

	p.Due(3)
	p.Reset()
	if p.Threshold() != 2 {
		t.Errorf("Threshold() after Reset = %d, want 2", p.Threshold())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"uniform ok", IntervalConfig{Mode: IntervalUniform, Base: time.Millisecond}.Validate(), false},
		{"uniform zero base", IntervalConfig{Mode: IntervalUniform}.Validate(), true},
		{"negative spread", IntervalConfig{Mode: IntervalUniform, Base: time.Millisecond, Spread: -1}.Validate(), true},
		{"exponential zero mean", IntervalConfig{Mode: IntervalExponential}.Validate(), true},
		{"spread negative", Spread{X: -1}.Validate(), true},
		{"drift inverted step", DriftConfig{StepMin: 2, StepMax: 1}.Validate(), true},
		{"drift inverted reset", DriftConfig{ResetMin: 2, ResetMax: 1}.Validate(), true},
		{"hold negative deviation", HoldConfig{Mean: time.Millisecond, StdDev: -1}.Validate(), true},
		{"hold disabled zero mean", HoldConfig{}.Validate(), false},
		{"pause inverted clicks", PauseConfig{MinClicks: 5, MaxClicks: 2}.Validate(), true},
		{"pause enabled zero clicks", PauseConfig{Enabled: true, Mean: time.Second}.Validate(), true},
		{"fatigue disabled", FatigueConfig{}.Validate(), false},
		{"fatigue enabled zero values", FatigueConfig{Enabled: true}.Validate(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}

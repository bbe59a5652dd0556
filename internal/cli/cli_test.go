package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/autoclick/internal/clicker"
	"github.com/stigoleg/autoclick/internal/humanize"
	"github.com/stigoleg/autoclick/internal/platform"
)

type countingPointer struct {
	mu     sync.Mutex
	clicks atomic.Int64
	at     platform.Point
}

func (p *countingPointer) Position() (platform.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.at, nil
}

func (p *countingPointer) MoveTo(at platform.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.at = at
	return nil
}

func (p *countingPointer) Press(platform.Button) error   { return nil }
func (p *countingPointer) Release(platform.Button) error { return nil }

func (p *countingPointer) Click(_ platform.Button, count int) error {
	p.clicks.Add(int64(count))
	return nil
}

type fakeGuard struct {
	starts atomic.Int32
	stops  atomic.Int32
}

func (g *fakeGuard) Start(context.Context) error {
	g.starts.Add(1)
	return nil
}

func (g *fakeGuard) Stop() error {
	g.stops.Add(1)
	return nil
}

type harness struct {
	out     *bytes.Buffer
	pointer *countingPointer
	guard   *fakeGuard
}

func execute(t *testing.T, args ...string) (*harness, error) {
	t.Helper()
	h := &harness{
		out:     &bytes.Buffer{},
		pointer: &countingPointer{},
		guard:   &fakeGuard{},
	}
	root := NewRootCommand("test",
		WithOutput(h.out),
		WithDirectBackend(func() platform.Pointer { return h.pointer }),
		WithKeepAwake(func() (platform.KeepAlive, error) { return h.guard, nil }),
	)
	root.SetArgs(append(args, "--log-level", "error"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return h, root.ExecuteContext(ctx)
}

func TestVersionCommand(t *testing.T) {
	h, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "autoclick test")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoclick.yaml")

	h, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Wrote default settings")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "interval: 100ms")
	assert.Contains(t, string(raw), "exp_mean_interval: 313ms")

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err, "existing file must not be overwritten")

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigShowReflectsFlags(t *testing.T) {
	h, err := execute(t, "config", "show", "--interval", "250", "--button", "right", "--limit", "12")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "interval: 250ms")
	assert.Contains(t, out, "button: right")
	assert.Contains(t, out, "limit: 12")
}

func TestConfigFileAndSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(src, []byte("click:\n  type: double\n  spread_x: 3\n"), 0o600))

	dst := filepath.Join(dir, "out.yaml")
	_, err := execute(t, "--config", src, "config", "save", dst, "--humanize")
	require.NoError(t, err)

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "type: double")
	assert.Contains(t, string(raw), "spread_x: 3")
	assert.Contains(t, string(raw), "enabled: true")
}

func TestConfigSaveRejectsInvalid(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.yaml")
	_, err := execute(t, "config", "save", dst, "--button", "middle")
	require.Error(t, err)
	assert.NoFileExists(t, dst)
}

func TestRunStopsAtLimit(t *testing.T) {
	h, err := execute(t, "run", "--limit", "5", "--interval", "1")
	require.NoError(t, err)

	assert.Equal(t, int64(5), h.pointer.clicks.Load())
	assert.Contains(t, h.out.String(), "Stopped after 5 clicks: click limit reached.")
	assert.Equal(t, int32(1), h.guard.starts.Load(), "keep-awake guard runs with the session")
	assert.Equal(t, int32(1), h.guard.stops.Load())
}

func TestRunDoubleClickLimit(t *testing.T) {
	h, err := execute(t, "run", "--limit", "9", "--interval", "1", "--type", "double")
	require.NoError(t, err)
	assert.Equal(t, int64(10), h.pointer.clicks.Load())
}

func TestRunFor(t *testing.T) {
	h, err := execute(t, "run", "--interval", "5ms", "--for", "60ms", "--keep-awake=false")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "elapsed")
	assert.Positive(t, h.pointer.clicks.Load())
	assert.Zero(t, h.guard.starts.Load())
}

func TestRunRejectsInvalidSettings(t *testing.T) {
	h, err := execute(t, "run", "--mode", "gaussian")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval mode")
	assert.Zero(t, h.pointer.clicks.Load())

	_, err = execute(t, "run", "--for", "soon")
	assert.Error(t, err)
}

func TestBackgroundUnsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("background injection is available on windows")
	}
	_, err := execute(t, "run", "--background", "--target", "10,10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrUnsupported), "got %v", err)

	_, err = execute(t, "capture", "10,10")
	assert.True(t, errors.Is(err, platform.ErrUnsupported), "got %v", err)
}

func TestSummarize(t *testing.T) {
	cfg := clicker.DefaultConfig()
	s := summarize(cfg, "direct")
	assert.Equal(t, "100ms uniform", s.Interval)
	assert.Equal(t, "cursor", s.Target)
	assert.Equal(t, "left", s.Button)

	cfg.Interval.Mode = humanize.IntervalExponential
	cfg.Target = &platform.Point{X: 5, Y: 6}
	cfg.Spread = humanize.Spread{X: 2, Y: 3}
	cfg.Humanize = true
	s = summarize(cfg, "direct")
	assert.Equal(t, "313ms mean exponential", s.Interval)
	assert.Equal(t, "(5, 6) ±2/3px", s.Target)
	assert.True(t, s.Humanize)
}

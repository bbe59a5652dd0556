package integration

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stigoleg/autoclick/internal/platform"
)

type pointerEvent struct {
	op     string
	button platform.Button
	at     platform.Point
}

// recordingPointer is a thread-safe in-memory backend.
type recordingPointer struct {
	mu     sync.Mutex
	cursor platform.Point
	events []pointerEvent
	clicks atomic.Int64
}

func (p *recordingPointer) record(op string, b platform.Button) {
	p.events = append(p.events, pointerEvent{op: op, button: b, at: p.cursor})
}

func (p *recordingPointer) Position() (platform.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor, nil
}

func (p *recordingPointer) MoveTo(at platform.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = at
	p.record("move", "")
	return nil
}

func (p *recordingPointer) Press(b platform.Button) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("press", b)
	return nil
}

func (p *recordingPointer) Release(b platform.Button) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("release", b)
	p.clicks.Add(1)
	return nil
}

func (p *recordingPointer) Click(b platform.Button, count int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < count; i++ {
		p.record("click", b)
	}
	p.clicks.Add(int64(count))
	return nil
}

func (p *recordingPointer) snapshot() []pointerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pointerEvent(nil), p.events...)
}

type countingGuard struct {
	starts atomic.Int32
	stops  atomic.Int32
}

func (g *countingGuard) Start(context.Context) error {
	g.starts.Add(1)
	return nil
}

func (g *countingGuard) Stop() error {
	g.stops.Add(1)
	return nil
}

// helperProcess re-runs the test binary as a headless autoclick process.
type helperProcess struct {
	cmd   *exec.Cmd
	lines chan string
	done  chan error
}

func startHelper(t *testing.T, args ...string) *helperProcess {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=TestHeadlessHelper")
	cmd.Env = append(os.Environ(),
		"TEST_AUTOCLICK_HELPER=1",
		"TEST_AUTOCLICK_ARGS="+strings.Join(args, " "),
	)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start(), "helper process should start")

	h := &helperProcess{cmd: cmd, lines: make(chan string, 64), done: make(chan error, 1)}
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			h.lines <- scanner.Text()
		}
		close(h.lines)
		h.done <- cmd.Wait()
	}()

	t.Cleanup(func() {
		_ = cmd.Process.Kill()
	})
	return h
}

// expectLine waits for an output line containing want.
func (h *helperProcess) expectLine(t *testing.T, want string) string {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-h.lines:
			if !ok {
				t.Fatalf("helper exited before printing %q", want)
			}
			if strings.Contains(line, want) {
				return line
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func (h *helperProcess) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(5 * time.Second):
		_ = h.cmd.Process.Kill()
		t.Fatal("helper did not exit within timeout")
		return nil
	}
}

// Package platform defines the pointer-control abstraction used by the click
// engine and the per-OS keep-awake guards that run while a session is active.
package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported is returned when a backend is not available on this OS.
	ErrUnsupported = errors.New("platform: not supported on this operating system")
	// ErrTargetLost is returned when a bound target window no longer exists.
	ErrTargetLost = errors.New("platform: target window no longer exists")
	// ErrNoWindow is returned when no window could be found at a location.
	ErrNoWindow = errors.New("platform: no window at location")
)

// Button identifies a mouse button.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

func (b Button) String() string { return string(b) }

// ParseButton parses "left" or "right", case-insensitively.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	default:
		return ButtonLeft, fmt.Errorf("invalid mouse button %q: expected left or right", s)
	}
}

// Point is a screen coordinate in pixels.
type Point struct {
	X int
	Y int
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Window is an opaque native window handle. Zero means no window.
type Window uintptr

// Pointer is the primitive capability set a click backend exposes.
// Coordinates passed to MoveTo are in screen space; backends that target a
// window translate them themselves.
type Pointer interface {
	Position() (Point, error)
	MoveTo(p Point) error
	Press(b Button) error
	Release(b Button) error
	// Click performs count back-to-back press/release pairs.
	Click(b Button, count int) error
}

// TargetValidator is implemented by backends bound to a specific window.
type TargetValidator interface {
	// TargetValid reports whether the bound window still exists.
	TargetValid() bool
}

// KeepAlive holds the machine awake while it is started.
type KeepAlive interface {
	Start(ctx context.Context) error
	Stop() error
}

//go:build !windows

package inject

import (
	"fmt"

	"github.com/stigoleg/autoclick/internal/platform"
)

// Available reports whether background injection works on this OS.
func Available() bool { return false }

// CursorPosition is only implemented on Windows.
func CursorPosition() (platform.Point, error) {
	return platform.Point{}, fmt.Errorf("inject: %w", platform.ErrUnsupported)
}

// Capture is only implemented on Windows.
func Capture(at platform.Point) (platform.Window, error) {
	return 0, fmt.Errorf("inject: capture at %v: %w", at, platform.ErrUnsupported)
}

// Injector is a placeholder so callers compile on every OS.
type Injector struct{}

// New always fails outside Windows.
func New(w platform.Window, start platform.Point) (*Injector, error) {
	return nil, fmt.Errorf("inject: %w", platform.ErrUnsupported)
}

func (i *Injector) Window() platform.Window { return 0 }
func (i *Injector) TargetValid() bool { return false }
func (i *Injector) Position() (platform.Point, error) { return platform.Point{}, platform.ErrUnsupported }
func (i *Injector) MoveTo(platform.Point) error { return platform.ErrUnsupported }
func (i *Injector) Press(platform.Button) error { return platform.ErrUnsupported }
func (i *Injector) Release(platform.Button) error { return platform.ErrUnsupported }
func (i *Injector) Click(platform.Button, int) error { return platform.ErrUnsupported }

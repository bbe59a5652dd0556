package inject

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/stigoleg/autoclick/internal/platform"
)

func TestMakeLParam(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want uintptr
	}{
		{name: "origin", x: 0, y: 0, want: 0},
		{name: "positive", x: 10, y: 20, want: 20<<16 | 10},
		{name: "negative x", x: -1, y: 1, want: 1<<16 | 0xFFFF},
		{name: "negative y", x: 5, y: -2, want: 0xFFFE<<16 | 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeLParam(tt.x, tt.y); got != tt.want {
				t.Errorf("makeLParam(%d, %d) = %#x, want %#x", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPackPoint(t *testing.T) {
	if bits.UintSize != 64 {
		t.Skip("POINT packing only applies to 64-bit targets")
	}
	got := packPoint(platform.Point{X: 100, Y: 200})
	if want := uintptr(200)<<32 | 100; got != want {
		t.Errorf("packPoint() = %#x, want %#x", got, want)
	}
	got = packPoint(platform.Point{X: -1, Y: 0})
	if want := uintptr(0xFFFFFFFF); got != want {
		t.Errorf("packPoint() with negative x = %#x, want %#x", got, want)
	}
}

func TestButtonMessages(t *testing.T) {
	down, up, mk, err := buttonMessages(platform.ButtonLeft)
	if err != nil || down != wmLButtonDown || up != wmLButtonUp || mk != mkLButton {
		t.Errorf("left = %#x %#x %#x %v", down, up, mk, err)
	}
	down, up, mk, err = buttonMessages(platform.ButtonRight)
	if err != nil || down != wmRButtonDown || up != wmRButtonUp || mk != mkRButton {
		t.Errorf("right = %#x %#x %#x %v", down, up, mk, err)
	}
	if _, _, _, err := buttonMessages(platform.Button("middle")); err == nil {
		t.Error("expected error for unsupported button")
	}
}

func TestCaptureUnsupported(t *testing.T) {
	if Available() {
		t.Skip("injection is available on this OS")
	}
	if _, err := Capture(platform.Point{}); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("Capture() error = %v, want ErrUnsupported", err)
	}
	if _, err := New(1, platform.Point{}); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("New() error = %v, want ErrUnsupported", err)
	}
}

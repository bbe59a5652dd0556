// Package direct drives the real system cursor through robotgo.
package direct

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/stigoleg/autoclick/internal/platform"
)

// Pointer moves the visible cursor and clicks wherever it is.
type Pointer struct{}

// New returns the direct-mode pointer backend.
func New() *Pointer {
	return &Pointer{}
}

// Position returns the current cursor location.
func (p *Pointer) Position() (platform.Point, error) {
	x, y := robotgo.Location()
	return platform.Point{X: x, Y: y}, nil
}

// MoveTo warps the cursor to pt.
func (p *Pointer) MoveTo(pt platform.Point) error {
	robotgo.Move(pt.X, pt.Y)
	return nil
}

// Press holds b down.
func (p *Pointer) Press(b platform.Button) error {
	if err := checkButton(b); err != nil {
		return err
	}
	robotgo.Toggle(b.String())
	return nil
}

// Release lets b go.
func (p *Pointer) Release(b platform.Button) error {
	if err := checkButton(b); err != nil {
		return err
	}
	robotgo.Toggle(b.String(), "up")
	return nil
}

// Click issues count clicks of b. A count of two is sent as one native
// double click so the OS recognizes it as such.
func (p *Pointer) Click(b platform.Button, count int) error {
	if err := checkButton(b); err != nil {
		return err
	}
	switch {
	case count <= 0:
		return nil
	case count == 2:
		robotgo.Click(b.String(), true)
	default:
		for i := 0; i < count; i++ {
			robotgo.Click(b.String())
		}
	}
	return nil
}

func checkButton(b platform.Button) error {
	if b != platform.ButtonLeft && b != platform.ButtonRight {
		return fmt.Errorf("direct: unsupported button %q", b)
	}
	return nil
}

var _ platform.Pointer = (*Pointer)(nil)

// Package inject delivers synthetic button messages to a captured window
// without moving the system cursor or changing focus. Only Windows has a
// working implementation; elsewhere every entry point returns
// platform.ErrUnsupported.
package inject

import (
	"fmt"
	"time"

	"github.com/stigoleg/autoclick/internal/platform"
)

// Window messages and key-state flags used for injection.
const (
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205

	mkLButton = 0x0001
	mkRButton = 0x0002
)

// minimalGap separates injected press/release pairs inside Click, where no
// sampled hold time is available.
const minimalGap = 5 * time.Millisecond

// buttonMessages maps a button to its down/up messages and key-state flag.
func buttonMessages(b platform.Button) (down, up uint32, mk uintptr, err error) {
	switch b {
	case platform.ButtonLeft:
		return wmLButtonDown, wmLButtonUp, mkLButton, nil
	case platform.ButtonRight:
		return wmRButtonDown, wmRButtonUp, mkRButton, nil
	default:
		return 0, 0, 0, fmt.Errorf("inject: unsupported button %q", b)
	}
}

// makeLParam packs client coordinates the way MAKELPARAM does: x in the low
// word, y in the high word, each truncated to 16 bits.
func makeLParam(x, y int) uintptr {
	return uintptr(uint16(int16(y)))<<16 | uintptr(uint16(int16(x)))
}

// packPoint packs a POINT passed by value in a single 64-bit register.
func packPoint(p platform.Point) uintptr {
	return uintptr(uint32(int32(p.X))) | uintptr(uint32(int32(p.Y)))<<32
}

//go:build windows

package inject

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/stigoleg/autoclick/internal/platform"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procWindowFromPoint     = user32.NewProc("WindowFromPoint")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procIsWindow            = user32.NewProc("IsWindow")
	procScreenToClient      = user32.NewProc("ScreenToClient")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
)

type point struct {
	X, Y int32
}

// Available reports whether background injection works on this OS.
func Available() bool {
	return user32.Load() == nil
}

// CursorPosition returns the current system cursor location.
func CursorPosition() (platform.Point, error) {
	var pt point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return platform.Point{}, fmt.Errorf("inject: GetCursorPos failed: %w", err)
	}
	return platform.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

// Capture resolves the window under at. When nothing is there it falls back
// to the foreground window; if that fails too it returns ErrNoWindow.
func Capture(at platform.Point) (platform.Window, error) {
	if hwnd, _, _ := procWindowFromPoint.Call(packPoint(at)); hwnd != 0 {
		return platform.Window(hwnd), nil
	}
	if hwnd, _, _ := procGetForegroundWindow.Call(); hwnd != 0 {
		return platform.Window(hwnd), nil
	}
	return 0, fmt.Errorf("inject: capture at %v: %w", at, platform.ErrNoWindow)
}

func isWindow(w platform.Window) bool {
	ret, _, _ := procIsWindow.Call(uintptr(w))
	return ret != 0
}

// Injector posts button messages to one window. Its cursor is virtual:
// MoveTo only changes where the next message lands.
type Injector struct {
	window platform.Window

	mu     sync.Mutex
	cursor platform.Point
}

// New binds an injector to w with its virtual cursor at start.
func New(w platform.Window, start platform.Point) (*Injector, error) {
	if w == 0 || !isWindow(w) {
		return nil, fmt.Errorf("inject: window %#x: %w", uintptr(w), platform.ErrTargetLost)
	}
	return &Injector{window: w, cursor: start}, nil
}

// Window returns the bound window handle.
func (i *Injector) Window() platform.Window {
	return i.window
}

// TargetValid reports whether the bound window still exists.
func (i *Injector) TargetValid() bool {
	return isWindow(i.window)
}

// Position returns the virtual cursor in screen coordinates.
func (i *Injector) Position() (platform.Point, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.cursor, nil
}

// MoveTo sets the virtual cursor. The real pointer does not move.
func (i *Injector) MoveTo(p platform.Point) error {
	i.mu.Lock()
	i.cursor = p
	i.mu.Unlock()
	return nil
}

// Press posts a button-down message at the virtual cursor.
func (i *Injector) Press(b platform.Button) error {
	down, _, mk, err := buttonMessages(b)
	if err != nil {
		return err
	}
	return i.post(down, mk)
}

// Release posts a button-up message at the virtual cursor.
func (i *Injector) Release(b platform.Button) error {
	_, up, _, err := buttonMessages(b)
	if err != nil {
		return err
	}
	return i.post(up, 0)
}

// Click posts count press/release pairs separated by a fixed minimal gap.
func (i *Injector) Click(b platform.Button, count int) error {
	for n := 0; n < count; n++ {
		if n > 0 {
			time.Sleep(minimalGap)
		}
		if err := i.Press(b); err != nil {
			return err
		}
		time.Sleep(minimalGap)
		if err := i.Release(b); err != nil {
			return err
		}
	}
	return nil
}

func (i *Injector) post(msg uint32, wParam uintptr) error {
	if !i.TargetValid() {
		return fmt.Errorf("inject: window %#x: %w", uintptr(i.window), platform.ErrTargetLost)
	}

	i.mu.Lock()
	pt := point{X: int32(i.cursor.X), Y: int32(i.cursor.Y)}
	i.mu.Unlock()

	if ret, _, err := procScreenToClient.Call(uintptr(i.window), uintptr(unsafe.Pointer(&pt))); ret == 0 {
		return fmt.Errorf("inject: ScreenToClient failed: %w", err)
	}
	lParam := makeLParam(int(pt.X), int(pt.Y))
	if ret, _, err := procPostMessageW.Call(uintptr(i.window), uintptr(msg), wParam, lParam); ret == 0 {
		return fmt.Errorf("inject: PostMessageW failed: %w", err)
	}
	return nil
}

var (
	_ platform.Pointer         = (*Injector)(nil)
	_ platform.TargetValidator = (*Injector)(nil)
)

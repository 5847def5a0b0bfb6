// Package inject synthesizes keyboard and mouse events.
package inject

import "time"

// Button is a mouse button.
type Button int

const (
	Left Button = iota
	Right
	Middle
	X1
	X2
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	case X1:
		return "x1"
	case X2:
		return "x2"
	}
	return "unknown"
}

// ButtonForMouse maps a symbolic MouseN number to a button.
func ButtonForMouse(n int) (Button, bool) {
	switch n {
	case 1:
		return Left, true
	case 2:
		return Right, true
	case 3:
		return Middle, true
	case 4:
		return X1, true
	case 5:
		return X2, true
	}
	return 0, false
}

// Injector is the narrow seam over the OS injection facility. Calls are
// fire-and-forget; implementations swallow failures.
type Injector interface {
	KeyDown(vk uint16)
	KeyUp(vk uint16)
	ButtonDown(b Button)
	ButtonUp(b Button)
	// MoveTo moves the cursor to absolute screen pixels.
	MoveTo(x, y int)
}

// SleepFunc blocks for d. Production code uses time.Sleep.
type SleepFunc func(d time.Duration)

// TapHold is how long Tap and Press keep a key or button down.
const TapHold = 30 * time.Millisecond

// Tap presses and releases a key.
func Tap(inj Injector, sleep SleepFunc, vk uint16) {
	inj.KeyDown(vk)
	sleep(TapHold)
	inj.KeyUp(vk)
}

// Press presses and releases a mouse button.
func Press(inj Injector, sleep SleepFunc, b Button) {
	inj.ButtonDown(b)
	sleep(TapHold)
	inj.ButtonUp(b)
}

// Normalize converts pixel coordinates to the 0..65535 absolute range used
// by absolute mouse injection. A zero extent maps to 0.
func Normalize(x, y, width, height int) (int32, int32) {
	return normalizeAxis(x, width), normalizeAxis(y, height)
}

func normalizeAxis(v, extent int) int32 {
	if extent <= 0 {
		return 0
	}
	return int32(int64(v) * 65535 / int64(extent))
}

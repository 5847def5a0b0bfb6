package hook

import (
	"maps"
	"sync"
)

// ButtonSlots is the length of State.Buttons. Index 0 is unused so button
// numbers index directly: 1 left, 2 right, 3 middle, 4 X1, 5 X2.
const ButtonSlots = 6

// State is one poll of the keyboard and mouse.
type State struct {
	Keys    map[uint16]struct{} // pressed detection codes
	Buttons []bool
	X, Y    int
}

// KeyDown reports whether code is pressed.
func (s State) KeyDown(code uint16) bool {
	_, ok := s.Keys[code]
	return ok
}

// Idle reports whether nothing is pressed.
func (s State) Idle() bool {
	if len(s.Keys) > 0 {
		return false
	}
	for _, down := range s.Buttons {
		if down {
			return false
		}
	}
	return true
}

// Poller returns the current device state without blocking.
type Poller interface {
	Poll() State
}

// Device accumulates input events from a source into a pollable state.
type Device struct {
	mu      sync.Mutex
	keys    map[uint16]struct{}
	buttons [ButtonSlots]bool
	x, y    int
}

// NewDevice returns a Device with nothing pressed.
func NewDevice() *Device {
	return &Device{keys: make(map[uint16]struct{})}
}

// Poll returns a copy of the current state.
func (d *Device) Poll() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	buttons := make([]bool, ButtonSlots)
	copy(buttons, d.buttons[:])
	return State{
		Keys:    maps.Clone(d.keys),
		Buttons: buttons,
		X:       d.x,
		Y:       d.y,
	}
}

func (d *Device) KeyPressed(code uint16) {
	if code == 0 {
		return
	}
	d.mu.Lock()
	d.keys[code] = struct{}{}
	d.mu.Unlock()
}

func (d *Device) KeyReleased(code uint16) {
	d.mu.Lock()
	delete(d.keys, code)
	d.mu.Unlock()
}

func (d *Device) ButtonPressed(n int) {
	d.setButton(n, true)
}

func (d *Device) ButtonReleased(n int) {
	d.setButton(n, false)
}

func (d *Device) setButton(n int, down bool) {
	if n <= 0 || n >= ButtonSlots {
		return
	}
	d.mu.Lock()
	d.buttons[n] = down
	d.mu.Unlock()
}

// MoveTo records an absolute cursor position.
func (d *Device) MoveTo(x, y int) {
	d.mu.Lock()
	d.x, d.y = x, y
	d.mu.Unlock()
}

// MoveBy applies relative motion, for sources without absolute coordinates.
func (d *Device) MoveBy(dx, dy int) {
	d.mu.Lock()
	d.x += dx
	d.y += dy
	d.mu.Unlock()
}

// Reset clears all pressed keys and buttons.
func (d *Device) Reset() {
	d.mu.Lock()
	clear(d.keys)
	d.buttons = [ButtonSlots]bool{}
	d.mu.Unlock()
}

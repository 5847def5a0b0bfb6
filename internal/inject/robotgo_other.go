//go:build !windows

package inject

import (
	"log/slog"
	"strconv"

	"github.com/go-vgo/robotgo"

	"github.com/victortrac/stashclicker/internal/keymap"
)

// robotgoKeys maps virtual keys to robotgo key names.
var robotgoKeys = func() map[uint16]string {
	m := map[uint16]string{
		keymap.VKShift:   "shift",
		keymap.VKControl: "ctrl",
		keymap.VKMenu:    "alt",
		keymap.VKSpace:   "space",
		keymap.VKReturn:  "enter",
		keymap.VKEscape:  "esc",
		keymap.VKBack:    "backspace",
		keymap.VKTab:     "tab",
		keymap.VKCapital: "capslock",
		keymap.VKInsert:  "insert",
	}
	for c := 'A'; c <= 'Z'; c++ {
		m[uint16(c)] = string(c + ('a' - 'A'))
	}
	for c := '0'; c <= '9'; c++ {
		m[uint16(c)] = string(c)
	}
	for n := 1; n <= 12; n++ {
		m[keymap.VKF1+uint16(n-1)] = "f" + strconv.Itoa(n)
	}
	return m
}()

var robotgoButtons = map[Button]string{
	Left:   "left",
	Right:  "right",
	Middle: "center",
}

// Robotgo injects through robotgo. Extra mouse buttons are not supported.
type Robotgo struct {
	logger *slog.Logger
}

// New returns the platform injector.
func New(logger *slog.Logger) Injector {
	return &Robotgo{logger: logger}
}

func (r *Robotgo) KeyDown(vk uint16) {
	r.key(vk, "down")
}

func (r *Robotgo) KeyUp(vk uint16) {
	r.key(vk, "up")
}

func (r *Robotgo) key(vk uint16, dir string) {
	name, ok := robotgoKeys[vk]
	if !ok {
		return
	}
	if err := robotgo.KeyToggle(name, dir); err != nil {
		r.logger.Debug("robotgo key toggle failed", "key", name, "dir", dir, "err", err)
	}
}

func (r *Robotgo) ButtonDown(b Button) {
	r.button(b, "down")
}

func (r *Robotgo) ButtonUp(b Button) {
	r.button(b, "up")
}

func (r *Robotgo) button(b Button, dir string) {
	name, ok := robotgoButtons[b]
	if !ok {
		r.logger.Debug("mouse button not supported by robotgo", "button", b.String())
		return
	}
	if err := robotgo.Toggle(name, dir); err != nil {
		r.logger.Debug("robotgo button toggle failed", "button", name, "dir", dir, "err", err)
	}
}

func (r *Robotgo) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

//go:build linux

package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/victortrac/stashclicker/internal/keymap"
)

// evdevKeys maps evdev key codes to the identifiers keymap resolves.
var evdevKeys = map[evdev.EvCode]string{
	evdev.KEY_A: "KeyA", evdev.KEY_B: "KeyB", evdev.KEY_C: "KeyC", evdev.KEY_D: "KeyD",
	evdev.KEY_E: "KeyE", evdev.KEY_F: "KeyF", evdev.KEY_G: "KeyG", evdev.KEY_H: "KeyH",
	evdev.KEY_I: "KeyI", evdev.KEY_J: "KeyJ", evdev.KEY_K: "KeyK", evdev.KEY_L: "KeyL",
	evdev.KEY_M: "KeyM", evdev.KEY_N: "KeyN", evdev.KEY_O: "KeyO", evdev.KEY_P: "KeyP",
	evdev.KEY_Q: "KeyQ", evdev.KEY_R: "KeyR", evdev.KEY_S: "KeyS", evdev.KEY_T: "KeyT",
	evdev.KEY_U: "KeyU", evdev.KEY_V: "KeyV", evdev.KEY_W: "KeyW", evdev.KEY_X: "KeyX",
	evdev.KEY_Y: "KeyY", evdev.KEY_Z: "KeyZ",

	evdev.KEY_1: "Digit1", evdev.KEY_2: "Digit2", evdev.KEY_3: "Digit3", evdev.KEY_4: "Digit4",
	evdev.KEY_5: "Digit5", evdev.KEY_6: "Digit6", evdev.KEY_7: "Digit7", evdev.KEY_8: "Digit8",
	evdev.KEY_9: "Digit9", evdev.KEY_0: "Digit0",

	evdev.KEY_F1: "F1", evdev.KEY_F2: "F2", evdev.KEY_F3: "F3",
	evdev.KEY_F4: "F4", evdev.KEY_F5: "F5", evdev.KEY_F6: "F6",
	evdev.KEY_F7: "F7", evdev.KEY_F8: "F8", evdev.KEY_F9: "F9",
	evdev.KEY_F10: "F10", evdev.KEY_F11: "F11", evdev.KEY_F12: "F12",

	evdev.KEY_LEFTSHIFT: "ShiftLeft", evdev.KEY_RIGHTSHIFT: "ShiftRight",
	evdev.KEY_LEFTCTRL: "ControlLeft", evdev.KEY_RIGHTCTRL: "ControlRight",
	evdev.KEY_LEFTALT: "AltLeft", evdev.KEY_RIGHTALT: "AltRight",

	evdev.KEY_SPACE:     "Space",
	evdev.KEY_ENTER:     "Enter",
	evdev.KEY_ESC:       "Escape",
	evdev.KEY_BACKSPACE: "Backspace",
	evdev.KEY_TAB:       "Tab",
	evdev.KEY_CAPSLOCK:  "CapsLock",
	evdev.KEY_INSERT:    "Insert",
}

var evdevButtons = map[evdev.EvCode]int{
	evdev.BTN_LEFT:   1,
	evdev.BTN_RIGHT:  2,
	evdev.BTN_MIDDLE: 3,
	evdev.BTN_SIDE:   4,
	evdev.BTN_EXTRA:  5,
}

var evdevDetection = func() map[evdev.EvCode]uint16 {
	m := make(map[evdev.EvCode]uint16, len(evdevKeys))
	for code, id := range evdevKeys {
		if dc, ok := keymap.ResolveForDetection(id); ok {
			m[code] = dc
		}
	}
	return m
}()

type deviceKind int

const (
	kindKeyboard deviceKind = 1 << iota
	kindMouse
)

// RunEvdev opens every keyboard and mouse under /dev/input and feeds d
// until ctx is done. Cursor coordinates are virtual, accumulated from
// relative motion.
func RunEvdev(ctx context.Context, d *Device, logger *slog.Logger) error {
	logger.Info("Starting global input hook", "source", "evdev")

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}

	var (
		devices []io.Closer
		wg      sync.WaitGroup
	)
	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			if os.IsPermission(err) {
				closeAll(devices, &wg)
				return fmt.Errorf("open %s: %w (add your user to the 'input' group)", path, err)
			}
			continue
		}

		kind := classifyDevice(dev)
		if kind == 0 {
			dev.Close()
			continue
		}

		name, _ := dev.Name()
		logger.Info("Opened input device", "path", path, "name", name,
			"keyboard", kind&kindKeyboard != 0, "mouse", kind&kindMouse != 0)

		devices = append(devices, dev)
		wg.Add(1)
		go func() {
			defer wg.Done()
			readLoop(dev, kind, d)
		}()
	}

	if len(devices) == 0 {
		return errors.New("no usable input devices under /dev/input")
	}

	<-ctx.Done()
	closeAll(devices, &wg)
	return nil
}

// closeAll closes every device, which ends its reader, and waits for the
// readers to return.
func closeAll(devices []io.Closer, wg *sync.WaitGroup) {
	for _, dev := range devices {
		dev.Close()
	}
	wg.Wait()
}

func classifyDevice(dev *evdev.InputDevice) deviceKind {
	var kind deviceKind

	capableTypes := dev.CapableTypes()
	hasType := func(t evdev.EvType) bool {
		for _, ct := range capableTypes {
			if ct == t {
				return true
			}
		}
		return false
	}

	if hasType(evdev.EV_KEY) {
		codes := dev.CapableEvents(evdev.EV_KEY)
		codeSet := make(map[evdev.EvCode]bool, len(codes))
		for _, c := range codes {
			codeSet[c] = true
		}
		if codeSet[evdev.KEY_A] {
			kind |= kindKeyboard
		}
		if codeSet[evdev.BTN_LEFT] && hasType(evdev.EV_REL) {
			kind |= kindMouse
		}
	}

	return kind
}

func readLoop(dev *evdev.InputDevice, kind deviceKind, d *Device) {
	var dx, dy int32

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}

		switch ev.Type {
		case evdev.EV_KEY:
			applyEvdevKey(d, kind, ev.Code, ev.Value)

		case evdev.EV_REL:
			if kind&kindMouse == 0 {
				continue
			}
			switch ev.Code {
			case evdev.REL_X:
				dx += ev.Value
			case evdev.REL_Y:
				dy += ev.Value
			}

		case evdev.EV_SYN:
			if ev.Code == 0 && (dx != 0 || dy != 0) {
				d.MoveBy(int(dx), int(dy))
				dx, dy = 0, 0
			}
		}
	}
}

// applyEvdevKey handles press (1), repeat (2) and release (0).
func applyEvdevKey(d *Device, kind deviceKind, code evdev.EvCode, value int32) {
	if kind&kindMouse != 0 {
		if n, ok := evdevButtons[code]; ok {
			if value == 0 {
				d.ButtonReleased(n)
			} else {
				d.ButtonPressed(n)
			}
			return
		}
	}
	if kind&kindKeyboard == 0 {
		return
	}
	dc, ok := evdevDetection[code]
	if !ok {
		return
	}
	if value == 0 {
		d.KeyReleased(dc)
	} else {
		d.KeyPressed(dc)
	}
}

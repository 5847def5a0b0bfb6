//go:build windows

package inject

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSendInput        = user32.NewProc("SendInput")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

const (
	inputMouse    = 0
	inputKeyboard = 1
)

const (
	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfXDown      = 0x0080
	mouseeventfXUp        = 0x0100
	mouseeventfAbsolute   = 0x8000

	keyeventfKeyUp = 0x0002

	xbutton1 = 0x0001
	xbutton2 = 0x0002
)

// input mirrors the 64-bit INPUT layout: type, padding, 32-byte union.
type input struct {
	Type     uint32
	_padding uint32
	Data     [32]byte
}

type mouseInput struct {
	Dx, Dy      int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// SendInput injects through user32 SendInput.
type SendInput struct {
	logger *slog.Logger
}

// New returns the platform injector.
func New(logger *slog.Logger) Injector {
	return &SendInput{logger: logger}
}

func (s *SendInput) KeyDown(vk uint16) {
	s.keyboard(keybdInput{WVk: vk})
}

func (s *SendInput) KeyUp(vk uint16) {
	s.keyboard(keybdInput{WVk: vk, DwFlags: keyeventfKeyUp})
}

func (s *SendInput) ButtonDown(b Button) {
	flags, data := buttonFlags(b, true)
	s.mouse(mouseInput{DwFlags: flags, MouseData: data})
}

func (s *SendInput) ButtonUp(b Button) {
	flags, data := buttonFlags(b, false)
	s.mouse(mouseInput{DwFlags: flags, MouseData: data})
}

func (s *SendInput) MoveTo(x, y int) {
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	nx, ny := Normalize(x, y, int(int32(w)), int(int32(h)))
	s.mouse(mouseInput{Dx: nx, Dy: ny, DwFlags: mouseeventfAbsolute | mouseeventfMove})
}

func buttonFlags(b Button, down bool) (flags, data uint32) {
	switch b {
	case Right:
		if down {
			return mouseeventfRightDown, 0
		}
		return mouseeventfRightUp, 0
	case Middle:
		if down {
			return mouseeventfMiddleDown, 0
		}
		return mouseeventfMiddleUp, 0
	case X1, X2:
		data = xbutton1
		if b == X2 {
			data = xbutton2
		}
		if down {
			return mouseeventfXDown, data
		}
		return mouseeventfXUp, data
	default:
		if down {
			return mouseeventfLeftDown, 0
		}
		return mouseeventfLeftUp, 0
	}
}

func (s *SendInput) mouse(mi mouseInput) {
	var in input
	in.Type = inputMouse
	*(*mouseInput)(unsafe.Pointer(&in.Data[0])) = mi
	s.send(in)
}

func (s *SendInput) keyboard(ki keybdInput) {
	var in input
	in.Type = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&in.Data[0])) = ki
	s.send(in)
}

func (s *SendInput) send(in input) {
	ret, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if ret == 0 {
		s.logger.Debug("SendInput rejected event", "type", in.Type, "err", err)
	}
}

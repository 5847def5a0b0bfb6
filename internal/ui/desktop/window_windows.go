//go:build windows

package desktop

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

const (
	swHide = 0
	swShow = 5
)

func setVisible(hwnd unsafe.Pointer, visible bool, logger *slog.Logger) {
	if hwnd == nil {
		return
	}
	cmd := swHide
	if visible {
		cmd = swShow
	}
	procShowWindow.Call(uintptr(hwnd), uintptr(cmd))
	if visible {
		if r, _, err := procSetForegroundWindow.Call(uintptr(hwnd)); r == 0 {
			logger.Debug("SetForegroundWindow failed", "err", err)
		}
	}
}

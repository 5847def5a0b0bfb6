//go:build !windows

package desktop

import (
	"log/slog"
	"unsafe"
)

// Native show and hide are only implemented for Windows; elsewhere the
// window stays as the window manager left it.
func setVisible(_ unsafe.Pointer, visible bool, logger *slog.Logger) {
	logger.Debug("Window visibility not supported on this platform", "visible", visible)
}

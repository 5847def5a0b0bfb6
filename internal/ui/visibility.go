// Package ui holds the settings window, the tray overlay and the logic that
// switches between them.
package ui

import (
	"log/slog"
	"sync"
)

// Surface is something that can be shown and hidden.
type Surface interface {
	Show()
	Hide()
}

// Toggler keeps exactly one of the main window and the overlay visible.
// The main window starts visible.
type Toggler struct {
	main, overlay Surface
	logger        *slog.Logger

	mu          sync.Mutex
	mainVisible bool
}

func NewToggler(main, overlay Surface, logger *slog.Logger) *Toggler {
	return &Toggler{main: main, overlay: overlay, logger: logger, mainVisible: true}
}

// Toggle swaps which surface is visible.
func (t *Toggler) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(!t.mainVisible)
}

// ShowMain brings the main window back if the overlay is showing.
func (t *Toggler) ShowMain() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.mainVisible {
		t.set(true)
	}
}

func (t *Toggler) MainVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mainVisible
}

func (t *Toggler) set(mainVisible bool) {
	if mainVisible {
		t.main.Show()
		t.overlay.Hide()
	} else {
		t.main.Hide()
		t.overlay.Show()
	}
	t.mainVisible = mainVisible
	t.logger.Debug("Visibility changed", "main", mainVisible)
}

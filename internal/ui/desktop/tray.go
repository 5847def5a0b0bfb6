package desktop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"github.com/victortrac/stashclicker/internal/ui"
)

// Tray is the tray menu and doubles as the overlay indicator.
type Tray struct {
	ctrl   ui.Controller
	logger *slog.Logger

	// OnShowWindow and OnQuit run when the matching menu item is clicked.
	OnShowWindow func()
	OnQuit       func()

	mu      sync.Mutex
	overlay bool
	running bool
}

func NewTray(ctrl ui.Controller, logger *slog.Logger) *Tray {
	return &Tray{ctrl: ctrl, logger: logger}
}

// Ready builds the menu and serves it until ctx is done. It is meant to be
// the systray onReady callback.
func (t *Tray) Ready(ctx context.Context) {
	t.logger.Info("Tray ready")
	systray.SetTooltip("StashClicker autoclicker and macros")

	mToggle := systray.AddMenuItem("Toggle autoclick", "Start or stop autoclicking")
	mShow := systray.AddMenuItem("Show window", "Open the settings window")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit StashClicker")

	t.setRunning(t.ctrl.GetClickerState().Enabled)

	events, cancel := t.ctrl.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				t.setRunning(ev.Running)
			case <-mToggle.ClickedCh:
				t.ctrl.ToggleAutoclick()
				t.ctrl.Notify()
			case <-mShow.ClickedCh:
				if t.OnShowWindow != nil {
					t.OnShowWindow()
				}
			case <-mQuit.ClickedCh:
				if t.OnQuit != nil {
					t.OnQuit()
				}
				return
			}
		}
	}()
}

// Show turns the overlay indicator on.
func (t *Tray) Show() {
	t.mu.Lock()
	t.overlay = true
	t.mu.Unlock()
	t.refresh()
}

// Hide turns the overlay indicator off.
func (t *Tray) Hide() {
	t.mu.Lock()
	t.overlay = false
	t.mu.Unlock()
	t.refresh()
}

func (t *Tray) setRunning(running bool) {
	t.mu.Lock()
	t.running = running
	t.mu.Unlock()
	t.refresh()
}

func (t *Tray) refresh() {
	t.mu.Lock()
	title := ui.OverlayTitle(t.overlay, t.running)
	t.mu.Unlock()
	systray.SetTitle(title)
}

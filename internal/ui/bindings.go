package ui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/macro"
)

// Controller is the set of operations bound into the settings page.
type Controller interface {
	ToggleAutoclick() bool
	UpdateClickerConfig(s clicker.Settings) control.ClickerState
	GetClickerState() control.ClickerState
	CapturePosition(ctx context.Context) (x, y int, err error)
	UpdateMacroConfig(s macro.Settings) macro.Config
	GetMacroConfig() macro.Config
	Subscribe() (<-chan control.ClickerStateChanged, func())
	Notify()
}

// Position is a captured cursor position as the page receives it.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bindings returns the page-callable functions by name. Capture blocks the
// caller until a key is pressed or ctx is done.
func Bindings(ctx context.Context, ctrl Controller) map[string]any {
	return map[string]any{
		"toggle_clicker": func() bool {
			return ctrl.ToggleAutoclick()
		},
		"update_config": func(s clicker.Settings) control.ClickerState {
			return ctrl.UpdateClickerConfig(s)
		},
		"get_clicker_state": func() control.ClickerState {
			return ctrl.GetClickerState()
		},
		"capture_position": func() (Position, error) {
			x, y, err := ctrl.CapturePosition(ctx)
			return Position{X: x, Y: y}, err
		},
		"update_macro_config": func(s macro.Settings) macro.Settings {
			return ctrl.UpdateMacroConfig(s).Settings()
		},
		"get_macro_config": func() macro.Settings {
			return ctrl.GetMacroConfig().Settings()
		},
	}
}

// EventScript returns the JavaScript that raises ev in the page.
func EventScript(ev control.ClickerStateChanged) (string, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("window.dispatchEvent(new CustomEvent(%q, {detail: %s}));", control.EventStateChanged, data), nil
}

// OverlayTitle is the tray title. While the overlay is shown it carries the
// autoclicker status.
func OverlayTitle(overlay, running bool) string {
	if !overlay {
		return "StashClicker"
	}
	status := "OFF"
	if running {
		status = "ON"
	}
	return "StashClicker [" + status + "]"
}

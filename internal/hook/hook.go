package hook

import (
	"context"
	"log/slog"

	gohook "github.com/robotn/gohook"
)

// RunGohook feeds d from the global gohook hook until ctx is done.
//
// Kinds follow libuiohook: KeyHold and MouseDown are the physical presses.
// MouseHold is the button release and MouseUp the click that may follow it.
func RunGohook(ctx context.Context, d *Device, logger *slog.Logger) {
	logger.Info("Starting global input hook", "source", "gohook")
	evChan := gohook.Start()
	defer gohook.End()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-evChan:
			if !ok {
				logger.Warn("Input hook channel closed")
				return
			}
			applyGohook(d, ev)
		}
	}
}

func applyGohook(d *Device, ev gohook.Event) {
	switch ev.Kind {
	case gohook.KeyHold, gohook.KeyDown:
		d.KeyPressed(ev.Keycode)
	case gohook.KeyUp:
		d.KeyReleased(ev.Keycode)
	case gohook.MouseDown:
		d.ButtonPressed(int(ev.Button))
		d.MoveTo(int(ev.X), int(ev.Y))
	case gohook.MouseHold, gohook.MouseUp:
		d.ButtonReleased(int(ev.Button))
		d.MoveTo(int(ev.X), int(ev.Y))
	case gohook.MouseMove, gohook.MouseDrag:
		d.MoveTo(int(ev.X), int(ev.Y))
	}
}

// Package desktop runs the native settings window and the tray menu.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	webview "github.com/webview/webview_go"

	"github.com/victortrac/stashclicker/internal/ui"
)

const (
	windowWidth  = 520
	windowHeight = 760
)

// Window is the settings window. Run must be called on the main thread;
// Show, Hide and Quit may be called from any goroutine.
type Window struct {
	w      webview.WebView
	logger *slog.Logger
	closed atomic.Bool
}

// NewWindow creates the window, binds the control operations and loads url.
func NewWindow(ctx context.Context, ctrl ui.Controller, url string, logger *slog.Logger) (*Window, error) {
	w := webview.New(false)
	if w == nil {
		return nil, errors.New("create webview")
	}
	w.SetTitle("StashClicker")
	w.SetSize(windowWidth, windowHeight, webview.HintNone)
	for name, fn := range ui.Bindings(ctx, ctrl) {
		if err := w.Bind(name, fn); err != nil {
			w.Destroy()
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}
	w.Navigate(url)

	win := &Window{w: w, logger: logger}
	go win.pushEvents(ctx, ctrl)
	return win, nil
}

func (w *Window) pushEvents(ctx context.Context, ctrl ui.Controller) {
	events, cancel := ctrl.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			js, err := ui.EventScript(ev)
			if err != nil {
				w.logger.Error("Failed to encode state notification", "err", err)
				continue
			}
			w.dispatch(func() { w.w.Eval(js) })
		}
	}
}

// Run blocks until the window is closed.
func (w *Window) Run() {
	w.logger.Info("Settings window opened")
	w.w.Run()
	w.closed.Store(true)
	w.w.Destroy()
}

func (w *Window) Show() {
	w.dispatch(func() { setVisible(w.w.Window(), true, w.logger) })
}

func (w *Window) Hide() {
	w.dispatch(func() { setVisible(w.w.Window(), false, w.logger) })
}

// Quit closes the window, which makes Run return.
func (w *Window) Quit() {
	w.dispatch(w.w.Terminate)
}

// dispatch runs f on the UI thread. It does nothing once the window is gone.
func (w *Window) dispatch(f func()) {
	if w.closed.Load() {
		return
	}
	w.w.Dispatch(f)
}

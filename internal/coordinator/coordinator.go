// Package coordinator runs the hotkey polling loop that drives the
// autoclicker toggle, the macros and window visibility.
package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/edge"
	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/keymap"
	"github.com/victortrac/stashclicker/internal/macro"
)

// DefaultPeriod is the polling period.
const DefaultPeriod = 10 * time.Millisecond

// VisibilityKey toggles between the main window and the overlay.
const VisibilityKey = "Insert"

var visibilityKey = keymap.MustParse(VisibilityKey)

// Visibility swaps the main window and the overlay indicator.
type Visibility interface {
	Toggle()
}

// Notifier receives a notification per hotkey toggle.
type Notifier interface {
	Publish(ev control.ClickerStateChanged)
}

// Dispatcher starts a macro run unless one already holds flag.
type Dispatcher interface {
	Trigger(flag *macro.ActiveFlag, part macro.Part, cfg macro.Config) bool
}

// Recorder observes hotkey activity.
type Recorder interface {
	TrackHotkey(role string)
	SetEnabled(enabled bool)
}

// Loop polls the device and dispatches hotkey edges. Visibility, Notifier
// and Tracker may be nil.
type Loop struct {
	Poller     hook.Poller
	Clicker    *clicker.Store
	Macros     *macro.Store
	Flag       *macro.ActiveFlag
	Runner     Dispatcher
	Visibility Visibility
	Notifier   Notifier
	Tracker    Recorder
	Logger     *slog.Logger
	Period     time.Duration

	edges edge.Detector
}

// Run ticks until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	period := l.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	l.Logger.Info("Hotkey listener started", "period", period)
	for {
		l.Tick()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick reads the device once and handles every hotkey edge in order:
// visibility, autoclick toggle, then the macros if none is running.
func (l *Loop) Tick() {
	st := l.Poller.Poll()

	if l.edges.Rising(edge.RoleVisibility, edge.KeyActive(visibilityKey, st)) {
		l.track(edge.RoleVisibility)
		if l.Visibility != nil {
			l.Visibility.Toggle()
		}
	}

	if l.edges.Rising(edge.RoleToggle, edge.IsActive(l.Clicker.ToggleKey(), st)) {
		l.track(edge.RoleToggle)
		cfg := l.Clicker.Toggle()
		l.Logger.Info("Global toggle", "running", cfg.Enabled)
		if l.Tracker != nil {
			l.Tracker.SetEnabled(cfg.Enabled)
		}
		if l.Notifier != nil {
			l.Notifier.Publish(control.StateChanged(cfg))
		}
	}

	// Macro edges keep their previous state while a run is active.
	if l.Flag.Active() {
		return
	}
	mc := l.Macros.Snapshot()
	if l.edges.Rising(edge.RolePart1, edge.IsActive(mc.Part1Key, st)) {
		l.track(edge.RolePart1)
		l.Runner.Trigger(l.Flag, macro.Part1, mc)
	}
	if l.edges.Rising(edge.RolePart2, edge.IsActive(mc.Part2Key, st)) {
		l.track(edge.RolePart2)
		l.Runner.Trigger(l.Flag, macro.Part2, mc)
	}
}

func (l *Loop) track(role edge.Role) {
	if l.Tracker != nil {
		l.Tracker.TrackHotkey(role.String())
	}
}

// Package control is the request/response and push boundary between the
// engine and whatever UI drives it.
package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/macro"
)

// CapturePollInterval is how often CapturePosition samples the device.
const CapturePollInterval = 10 * time.Millisecond

// ClickerState is the full autoclicker state as reported to the UI.
type ClickerState = clicker.Config

// EnabledGauge mirrors the enabled flag somewhere observable.
type EnabledGauge interface {
	SetEnabled(enabled bool)
}

// Controller implements the UI operations over the shared stores.
type Controller struct {
	clicker *clicker.Store
	macros  *macro.Store
	poller  hook.Poller
	broker  *Broker
	logger  *slog.Logger

	Gauge EnabledGauge
}

func New(cs *clicker.Store, ms *macro.Store, poller hook.Poller, broker *Broker, logger *slog.Logger) *Controller {
	return &Controller{clicker: cs, macros: ms, poller: poller, broker: broker, logger: logger}
}

// ToggleAutoclick flips the enabled flag and returns the new value.
func (c *Controller) ToggleAutoclick() bool {
	cfg := c.clicker.Toggle()
	c.logger.Info("Clicker toggled", "running", cfg.Enabled)
	if c.Gauge != nil {
		c.Gauge.SetEnabled(cfg.Enabled)
	}
	return cfg.Enabled
}

// UpdateClickerConfig replaces the editable settings. Nothing is validated;
// a zero rate simply keeps the engine idle.
func (c *Controller) UpdateClickerConfig(s clicker.Settings) ClickerState {
	cfg := c.clicker.Update(s)
	c.logger.Info("Clicker config updated",
		"cps", cfg.CPS,
		"randomness_ms", cfg.RandomnessMs,
		"humanize", cfg.Humanize,
		"toggle_key", cfg.ToggleKey,
		"mode", cfg.Mode.String())
	return cfg
}

func (c *Controller) GetClickerState() ClickerState {
	return c.clicker.Snapshot()
}

// CapturePosition waits until every key and button is released, then for
// the next key press, and returns the cursor position at that moment. It
// only fails when ctx is done.
func (c *Controller) CapturePosition(ctx context.Context) (x, y int, err error) {
	ticker := time.NewTicker(CapturePollInterval)
	defer ticker.Stop()

	released := false
	for {
		st := c.poller.Poll()
		if !released {
			released = st.Idle()
		}
		if released && len(st.Keys) > 0 {
			c.logger.Info("Position captured", "x", st.X, "y", st.Y)
			return st.X, st.Y, nil
		}

		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Controller) UpdateMacroConfig(s macro.Settings) macro.Config {
	cfg := c.macros.Update(s)
	c.logger.Info("Macro config updated",
		"part1", cfg.Part1Key,
		"part2", cfg.Part2Key,
		"dodge", cfg.DodgeKey,
		"safe_pocket", cfg.SafePocket,
		"quick_use", cfg.QuickUse,
		"delay_ms", cfg.DelayMs)
	return cfg
}

func (c *Controller) GetMacroConfig() macro.Config {
	return c.macros.Snapshot()
}

// Subscribe returns a channel of state notifications and a func that ends
// the subscription.
func (c *Controller) Subscribe() (<-chan ClickerStateChanged, func()) {
	return c.broker.Subscribe()
}

// Notify pushes the current state to subscribers, for callers that flip
// the state outside the hotkey path.
func (c *Controller) Notify() {
	c.broker.Publish(StateChanged(c.clicker.Snapshot()))
}

package coordinator

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/keymap"
	"github.com/victortrac/stashclicker/internal/macro"
)

type fakePoller struct {
	mu sync.Mutex
	st hook.State
}

func (p *fakePoller) Poll() hook.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// press replaces the state with exactly ids held.
func (p *fakePoller) press(ids ...string) {
	st := hook.State{Keys: map[uint16]struct{}{}, Buttons: make([]bool, hook.ButtonSlots)}
	for _, id := range ids {
		k := keymap.MustParse(id)
		if n, ok := k.MouseButton(); ok {
			st.Buttons[n] = true
			continue
		}
		code, _ := keymap.DetectionCode(k)
		st.Keys[code] = struct{}{}
	}
	p.mu.Lock()
	p.st = st
	p.mu.Unlock()
}

type fakeDispatcher struct {
	parts []macro.Part
	cfgs  []macro.Config
}

func (d *fakeDispatcher) Trigger(flag *macro.ActiveFlag, part macro.Part, cfg macro.Config) bool {
	if !flag.TryAcquire() {
		return false
	}
	d.parts = append(d.parts, part)
	d.cfgs = append(d.cfgs, cfg)
	return true
}

type fakeVisibility struct{ toggles int }

func (v *fakeVisibility) Toggle() { v.toggles++ }

type fakeNotifier struct{ events []control.ClickerStateChanged }

func (n *fakeNotifier) Publish(ev control.ClickerStateChanged) { n.events = append(n.events, ev) }

type fakeTracker struct {
	roles   []string
	enabled []bool
}

func (t *fakeTracker) TrackHotkey(role string) { t.roles = append(t.roles, role) }
func (t *fakeTracker) SetEnabled(v bool)       { t.enabled = append(t.enabled, v) }

type harness struct {
	loop       *Loop
	poller     *fakePoller
	dispatcher *fakeDispatcher
	visibility *fakeVisibility
	notifier   *fakeNotifier
	tracker    *fakeTracker
}

func newHarness() *harness {
	h := &harness{
		poller:     &fakePoller{},
		dispatcher: &fakeDispatcher{},
		visibility: &fakeVisibility{},
		notifier:   &fakeNotifier{},
		tracker:    &fakeTracker{},
	}
	h.poller.press()
	h.loop = &Loop{
		Poller:     h.poller,
		Clicker:    clicker.NewStore(clicker.Default()),
		Macros:     macro.NewStore(macro.Default()),
		Flag:       &macro.ActiveFlag{},
		Runner:     h.dispatcher,
		Visibility: h.visibility,
		Notifier:   h.notifier,
		Tracker:    h.tracker,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h
}

func (h *harness) tick(ids ...string) {
	h.poller.press(ids...)
	h.loop.Tick()
}

func TestDoubleToggleFlipsTwice(t *testing.T) {
	h := newHarness()

	h.tick("F6")
	h.tick()
	h.tick("F6")
	h.tick()

	if h.loop.Clicker.Snapshot().Enabled {
		t.Fatalf("two flips should end disabled")
	}
	if len(h.notifier.events) != 2 {
		t.Fatalf("notifications = %d, want 2", len(h.notifier.events))
	}
	if !h.notifier.events[0].Running || h.notifier.events[1].Running {
		t.Fatalf("notifications = %+v", h.notifier.events)
	}
	if ev := h.notifier.events[0]; ev.CPS != 10 || ev.ClickMode != clicker.ModeLeft {
		t.Fatalf("payload = %+v", ev)
	}
	if len(h.tracker.enabled) != 2 {
		t.Fatalf("gauge updates = %v", h.tracker.enabled)
	}
}

func TestHeldToggleFiresOnce(t *testing.T) {
	h := newHarness()
	for range 10 {
		h.tick("F6")
	}
	if !h.loop.Clicker.Snapshot().Enabled || len(h.notifier.events) != 1 {
		t.Fatalf("held key fired %d times", len(h.notifier.events))
	}
}

func TestToggleKeyChangeTakesEffect(t *testing.T) {
	h := newHarness()
	h.loop.Clicker.Update(clicker.Settings{CPS: 10, ToggleKey: "Mouse4"})

	h.tick("F6")
	h.tick()
	h.tick("Mouse4")

	if len(h.notifier.events) != 1 {
		t.Fatalf("notifications = %d, want 1 from the new key", len(h.notifier.events))
	}
}

func TestUnknownToggleKeyNeverFires(t *testing.T) {
	h := newHarness()
	h.loop.Clicker.Update(clicker.Settings{CPS: 10, ToggleKey: "Bogus"})
	h.tick("F6")
	h.tick()
	if len(h.notifier.events) != 0 {
		t.Fatalf("unknown key toggled the clicker")
	}
}

func TestVisibilityHotkey(t *testing.T) {
	h := newHarness()
	h.tick("Insert")
	h.tick("Insert")
	h.tick()
	h.tick("Insert")
	if h.visibility.toggles != 2 {
		t.Fatalf("toggles = %d, want 2", h.visibility.toggles)
	}
}

func TestMacroDispatchUsesSnapshot(t *testing.T) {
	h := newHarness()
	h.loop.Macros.Update(macro.Settings{Part1Key: "F7", Part2Key: "F8", SafePocketX: 5, SafePocketY: 5, QuickUseX: 9, QuickUseY: 9, DelayMs: 20})

	h.tick("F7")
	if len(h.dispatcher.parts) != 1 || h.dispatcher.parts[0] != macro.Part1 {
		t.Fatalf("dispatched %v", h.dispatcher.parts)
	}
	if h.dispatcher.cfgs[0].DelayMs != 20 {
		t.Fatalf("dispatched config %+v", h.dispatcher.cfgs[0])
	}
	if !h.loop.Flag.Active() {
		t.Fatalf("flag should be held by the dispatched run")
	}
}

func TestMacroEdgesIgnoredWhileActive(t *testing.T) {
	h := newHarness()
	h.loop.Flag.TryAcquire()

	h.tick("F7")
	h.tick("F8")
	if len(h.dispatcher.parts) != 0 {
		t.Fatalf("dispatched %v while a macro was active", h.dispatcher.parts)
	}

	// The toggle still works during a run.
	h.tick("F6")
	if len(h.notifier.events) != 1 {
		t.Fatalf("toggle ignored during a run")
	}

	// Part edges kept their pre-run state, so a key held when the run ends
	// is seen as a fresh press.
	h.loop.Flag.Release()
	h.tick("F7")
	if len(h.dispatcher.parts) != 1 || h.dispatcher.parts[0] != macro.Part1 {
		t.Fatalf("dispatched %v after the run", h.dispatcher.parts)
	}
}

func TestBothPartsInOneTickDispatchOnce(t *testing.T) {
	h := newHarness()
	h.tick("F7", "F8")
	if len(h.dispatcher.parts) != 1 || h.dispatcher.parts[0] != macro.Part1 {
		t.Fatalf("dispatched %v, want only part1", h.dispatcher.parts)
	}
}

func TestHotkeysAreTracked(t *testing.T) {
	h := newHarness()
	h.tick("Insert")
	h.tick("F6")
	h.tick("F8")
	want := []string{"visibility", "toggle", "part2"}
	if len(h.tracker.roles) != len(want) {
		t.Fatalf("roles = %v, want %v", h.tracker.roles, want)
	}
	for i := range want {
		if h.tracker.roles[i] != want[i] {
			t.Fatalf("roles = %v, want %v", h.tracker.roles, want)
		}
	}
}

func TestNilCollaborators(t *testing.T) {
	h := newHarness()
	h.loop.Visibility = nil
	h.loop.Notifier = nil
	h.loop.Tracker = nil
	h.tick("Insert", "F6")
	if !h.loop.Clicker.Snapshot().Enabled {
		t.Fatalf("toggle should work without a notifier")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness()
	h.loop.Period = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.loop.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return")
	}
}

package clicker

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/victortrac/stashclicker/internal/inject"
)

// IdleInterval is how often an idle engine re-reads the shared state.
const IdleInterval = 10 * time.Millisecond

// doubleClickPause separates the two halves of a double click.
const doubleClickPause = 2 * time.Millisecond

// Gate reports whether something else owns the input right now.
type Gate interface {
	Active() bool
}

// ClickRecorder counts issued clicks.
type ClickRecorder interface {
	TrackClick(mode string)
}

// State is the engine's state as of its last iteration.
type State int32

const (
	Idle State = iota
	Clicking
)

func (s State) String() string {
	if s == Clicking {
		return "clicking"
	}
	return "idle"
}

// Engine is the autoclick loop.
//
//	Idle     -> Clicking  Enabled && CPS > 0 && !Gate.Active()
//	Clicking -> Idle      otherwise, re-checked before every click
type Engine struct {
	store    *Store
	gate     Gate
	injector inject.Injector
	logger   *slog.Logger

	// Sleep and Rand are replaceable for tests.
	Sleep    inject.SleepFunc
	Rand     Rand
	Recorder ClickRecorder

	state  atomic.Int32
	clicks atomic.Int64
}

// NewEngine returns an engine reading store and yielding to gate.
func NewEngine(store *Store, gate Gate, injector inject.Injector, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		gate:     gate,
		injector: injector,
		logger:   logger,
		Sleep:    time.Sleep,
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run loops until ctx is done. There is no cancellation inside a click.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Info("Autoclick engine started")
	for ctx.Err() == nil {
		e.Step()
	}
	e.logger.Info("Autoclick engine stopped", "clicks", e.Clicks())
}

// Step runs one iteration: either one click and its gap, or one idle wait.
func (e *Engine) Step() State {
	cfg := e.store.Snapshot()
	if !cfg.Enabled || cfg.CPS == 0 || e.gate.Active() {
		e.setState(Idle)
		e.Sleep(IdleInterval)
		return Idle
	}

	e.setState(Clicking)
	hold, gap := Timing(cfg, e.Rand)
	Click(e.injector, e.Sleep, cfg.Mode, time.Duration(hold)*time.Millisecond)
	e.clicks.Add(1)
	if e.Recorder != nil {
		e.Recorder.TrackClick(cfg.Mode.String())
	}
	e.Sleep(time.Duration(gap) * time.Millisecond)
	return Clicking
}

func (e *Engine) setState(s State) {
	if State(e.state.Swap(int32(s))) != s {
		e.logger.Debug("Autoclick state changed", "state", s.String(), "clicks", e.Clicks())
	}
}

// State returns the state of the last iteration.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Clicks returns how many clicks the engine has issued.
func (e *Engine) Clicks() int64 {
	return e.clicks.Load()
}

// Click performs one click of mode holding the button for hold.
func Click(inj inject.Injector, sleep inject.SleepFunc, mode Mode, hold time.Duration) {
	switch mode {
	case ModeRight:
		inj.ButtonDown(inject.Right)
		sleep(hold)
		inj.ButtonUp(inject.Right)
	case ModeDouble:
		half := (hold / 2).Truncate(time.Millisecond)
		inj.ButtonDown(inject.Left)
		sleep(half)
		inj.ButtonUp(inject.Left)
		sleep(doubleClickPause)
		inj.ButtonDown(inject.Left)
		sleep(half)
		inj.ButtonUp(inject.Left)
	default:
		inj.ButtonDown(inject.Left)
		sleep(hold)
		inj.ButtonUp(inject.Left)
	}
}

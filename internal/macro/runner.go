package macro

import (
	"log/slog"
	"time"

	"github.com/victortrac/stashclicker/internal/inject"
	"github.com/victortrac/stashclicker/internal/keymap"
)

// Fixed in-game bindings.
const (
	vkInventory uint16 = 0x09 // Tab
	vkWheel     uint16 = 0x51 // Q
	vkSlot      uint16 = 0x36 // 6
	vkModifier  uint16 = 0x53 // S
)

const (
	dragSteps     = 15
	dragSettle    = 30 * time.Millisecond
	dragStepPause = 5 * time.Millisecond
	wheelHold     = 300 * time.Millisecond
	shortPause    = 50 * time.Millisecond
)

// Part selects one of the two scripts.
type Part int

const (
	Part1 Part = iota + 1
	Part2
)

func (p Part) String() string {
	switch p {
	case Part1:
		return "part1"
	case Part2:
		return "part2"
	}
	return "unknown"
}

// Outcome is how a run ended.
type Outcome int

const (
	Completed Outcome = iota
	Aborted
)

func (o Outcome) String() string {
	if o == Aborted {
		return "aborted"
	}
	return "completed"
}

// RunRecorder counts finished runs.
type RunRecorder interface {
	TrackMacro(part, outcome string)
}

// Runner plays the scripts through an Injector. Scripts are not
// cancellable once started.
type Runner struct {
	Injector inject.Injector
	Sleep    inject.SleepFunc
	Logger   *slog.Logger
	Recorder RunRecorder
}

func NewRunner(injector inject.Injector, logger *slog.Logger) *Runner {
	return &Runner{Injector: injector, Sleep: time.Sleep, Logger: logger}
}

// Trigger acquires flag and starts part on its own goroutine. It returns
// false without doing anything if a run already holds the flag. cfg must be
// a snapshot the caller will not modify.
func (r *Runner) Trigger(flag *ActiveFlag, part Part, cfg Config) bool {
	if !flag.TryAcquire() {
		return false
	}
	go func() {
		defer flag.Release()
		r.Run(part, cfg)
	}()
	return true
}

// Run plays part synchronously.
func (r *Runner) Run(part Part, cfg Config) Outcome {
	var out Outcome
	switch part {
	case Part1:
		out = r.Part1(cfg)
	case Part2:
		out = r.Part2(cfg)
	default:
		r.Logger.Warn("Unknown macro part", "part", int(part))
		return Aborted
	}
	if r.Recorder != nil {
		r.Recorder.TrackMacro(part.String(), out.String())
	}
	return out
}

// Part1 moves the item from the safe pocket to quick-use, then equips it
// from the wheel.
func (r *Runner) Part1(cfg Config) Outcome {
	if !cfg.Positioned() {
		r.Logger.Info("Macro part 1: positions not set, aborting")
		return Aborted
	}
	r.Logger.Info("Macro part 1: executing")
	delay := time.Duration(cfg.DelayMs) * time.Millisecond

	inject.Tap(r.Injector, r.Sleep, vkInventory)
	r.Sleep(delay)
	r.Drag(cfg.SafePocket, cfg.QuickUse)
	r.Sleep(delay)
	inject.Tap(r.Injector, r.Sleep, vkInventory)
	r.Sleep(delay)

	r.Injector.KeyDown(vkWheel)
	r.Sleep(wheelHold)
	inject.Tap(r.Injector, r.Sleep, vkSlot)
	r.Sleep(shortPause)
	r.Injector.KeyUp(vkWheel)

	r.Logger.Info("Macro part 1: done")
	return Completed
}

// Part2 dodges with the modifier held and moves the item back to the safe
// pocket.
func (r *Runner) Part2(cfg Config) Outcome {
	if !cfg.Positioned() {
		r.Logger.Info("Macro part 2: positions not set, aborting")
		return Aborted
	}
	r.Logger.Info("Macro part 2: executing")
	delay := time.Duration(cfg.DelayMs) * time.Millisecond

	r.Injector.KeyDown(vkModifier)
	r.Sleep(shortPause)
	r.Dodge(cfg.DodgeKey)
	r.Sleep(delay)
	inject.Tap(r.Injector, r.Sleep, vkInventory)
	r.Sleep(delay)
	r.Drag(cfg.QuickUse, cfg.SafePocket)
	r.Sleep(delay)
	inject.Tap(r.Injector, r.Sleep, vkInventory)
	r.Sleep(delay)
	r.Injector.KeyUp(vkModifier)

	r.Logger.Info("Macro part 2: done")
	return Completed
}

// Drag holds the left button while moving from one point to the other in
// fixed steps.
func (r *Runner) Drag(from, to Point) {
	r.Injector.MoveTo(int(from.X), int(from.Y))
	r.Sleep(dragSettle)
	r.Injector.ButtonDown(inject.Left)
	r.Sleep(dragSettle)
	for _, p := range DragPath(from, to) {
		r.Injector.MoveTo(int(p.X), int(p.Y))
		r.Sleep(dragStepPause)
	}
	r.Sleep(dragSettle)
	r.Injector.ButtonUp(inject.Left)
}

// DragPath returns the intermediate positions of a drag, ending at to.
// Coordinates truncate toward zero.
func DragPath(from, to Point) []Point {
	path := make([]Point, dragSteps)
	for i := 1; i <= dragSteps; i++ {
		path[i-1] = Point{
			X: from.X + int32((int64(to.X)-int64(from.X))*int64(i)/dragSteps),
			Y: from.Y + int32((int64(to.Y)-int64(from.Y))*int64(i)/dragSteps),
		}
	}
	return path
}

// Dodge presses the dodge binding. Mouse4 and Mouse5 are sent as the X
// buttons and any other mouse id as a right click. Keys are tapped. Unknown
// ids do nothing.
func (r *Runner) Dodge(id string) {
	k, ok := keymap.Parse(id)
	if !ok {
		r.Logger.Debug("Unknown dodge key", "key", id)
		return
	}
	if n, ok := k.MouseButton(); ok {
		b, ok := inject.ButtonForMouse(n)
		if !ok || (b != inject.X1 && b != inject.X2) {
			b = inject.Right
		}
		inject.Press(r.Injector, r.Sleep, b)
		return
	}
	if vk, ok := keymap.VirtualKey(k); ok {
		inject.Tap(r.Injector, r.Sleep, vk)
	}
}

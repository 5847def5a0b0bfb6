// Package injecttest provides a recording Injector for tests.
package injecttest

import (
	"fmt"
	"sync"
	"time"

	"github.com/victortrac/stashclicker/internal/inject"
)

// Op is the kind of a recorded call.
type Op int

const (
	OpKeyDown Op = iota
	OpKeyUp
	OpButtonDown
	OpButtonUp
	OpMove
	OpSleep
)

// Call is one recorded injection or sleep.
type Call struct {
	Op     Op
	VK     uint16
	Button inject.Button
	X, Y   int
	Sleep  time.Duration
}

func (c Call) String() string {
	switch c.Op {
	case OpKeyDown:
		return fmt.Sprintf("key down %#x", c.VK)
	case OpKeyUp:
		return fmt.Sprintf("key up %#x", c.VK)
	case OpButtonDown:
		return "button down " + c.Button.String()
	case OpButtonUp:
		return "button up " + c.Button.String()
	case OpMove:
		return fmt.Sprintf("move %d,%d", c.X, c.Y)
	case OpSleep:
		return "sleep " + c.Sleep.String()
	}
	return "unknown"
}

// Recorder records every call in order. Its Sleep method records the
// duration without blocking so scripted sequences run instantly.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Recorder) KeyDown(vk uint16) { r.record(Call{Op: OpKeyDown, VK: vk}) }

func (r *Recorder) KeyUp(vk uint16) { r.record(Call{Op: OpKeyUp, VK: vk}) }

func (r *Recorder) ButtonDown(b inject.Button) { r.record(Call{Op: OpButtonDown, Button: b}) }

func (r *Recorder) ButtonUp(b inject.Button) { r.record(Call{Op: OpButtonUp, Button: b}) }

func (r *Recorder) MoveTo(x, y int) { r.record(Call{Op: OpMove, X: x, Y: y}) }

// Sleep satisfies inject.SleepFunc.
func (r *Recorder) Sleep(d time.Duration) { r.record(Call{Op: OpSleep, Sleep: d}) }

// Calls returns a copy of everything recorded.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Injections returns the recorded calls without sleeps.
func (r *Recorder) Injections() []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op != OpSleep {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

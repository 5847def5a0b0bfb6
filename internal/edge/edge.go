// Package edge turns polled device state into "just pressed" events.
package edge

import (
	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/keymap"
)

// Role names a monitored hotkey.
type Role int

const (
	RoleVisibility Role = iota
	RoleToggle
	RolePart1
	RolePart2

	numRoles
)

func (r Role) String() string {
	switch r {
	case RoleVisibility:
		return "visibility"
	case RoleToggle:
		return "toggle"
	case RolePart1:
		return "part1"
	case RolePart2:
		return "part2"
	}
	return "unknown"
}

// IsActive reports whether id is currently pressed in st. Unknown ids are
// never active.
func IsActive(id string, st hook.State) bool {
	k, ok := keymap.Parse(id)
	if !ok {
		return false
	}
	return KeyActive(k, st)
}

// KeyActive is IsActive for an already parsed key.
func KeyActive(k keymap.Key, st hook.State) bool {
	if n, ok := k.MouseButton(); ok {
		return n < len(st.Buttons) && st.Buttons[n]
	}
	code, ok := keymap.DetectionCode(k)
	if !ok {
		return false
	}
	return st.KeyDown(code)
}

// Detector holds the previous tick's state per role. It is owned by a
// single goroutine and is not safe for concurrent use.
//
//	prev  now   fires  stored
//	false false no     false
//	false true  yes    true
//	true  true  no     true
//	true  false no     false
type Detector struct {
	prev [numRoles]bool
}

// Rising records now for role and reports a false to true transition.
func (d *Detector) Rising(role Role, now bool) bool {
	fired := now && !d.prev[role]
	d.prev[role] = now
	return fired
}

package edge

import (
	"testing"

	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/keymap"
)

func stateWith(keys []string, buttons ...int) hook.State {
	st := hook.State{
		Keys:    make(map[uint16]struct{}),
		Buttons: make([]bool, hook.ButtonSlots),
	}
	for _, id := range keys {
		code, ok := keymap.ResolveForDetection(id)
		if !ok {
			panic(id)
		}
		st.Keys[code] = struct{}{}
	}
	for _, n := range buttons {
		st.Buttons[n] = true
	}
	return st
}

func TestIsActiveKeyboard(t *testing.T) {
	st := stateWith([]string{"F6", "AltLeft"})
	if !IsActive("F6", st) {
		t.Fatalf("F6 should be active")
	}
	if !IsActive("AltLeft", st) {
		t.Fatalf("AltLeft should be active")
	}
	if IsActive("AltRight", st) {
		t.Fatalf("AltRight should not be active")
	}
	if IsActive("F7", st) {
		t.Fatalf("F7 should not be active")
	}
}

func TestIsActiveUnknownIsInactive(t *testing.T) {
	st := stateWith([]string{"F6"}, 3, 4, 5)
	for _, id := range []string{"", "Bogus", "Mouse1", "Mouse2"} {
		if IsActive(id, st) {
			t.Fatalf("%q should never be active", id)
		}
	}
}

func TestIsActiveMouseButtons(t *testing.T) {
	st := stateWith(nil, 4)
	if !IsActive("Mouse4", st) {
		t.Fatalf("Mouse4 should be active")
	}
	if IsActive("Mouse3", st) || IsActive("Mouse5", st) {
		t.Fatalf("only Mouse4 should be active")
	}
}

func TestIsActiveShortButtonList(t *testing.T) {
	st := hook.State{Buttons: []bool{false, true, true, true}}
	if !IsActive("Mouse3", st) {
		t.Fatalf("Mouse3 should be active")
	}
	if IsActive("Mouse4", st) || IsActive("Mouse5", st) {
		t.Fatalf("out of range buttons must be inactive")
	}
	if IsActive("Mouse3", hook.State{}) {
		t.Fatalf("nil buttons must be inactive")
	}
}

func TestRisingTransitionTable(t *testing.T) {
	tests := []struct {
		prev, now bool
		fires     bool
	}{
		{false, false, false},
		{false, true, true},
		{true, true, false},
		{true, false, false},
	}
	for _, tt := range tests {
		var d Detector
		d.Rising(RoleToggle, tt.prev)
		if got := d.Rising(RoleToggle, tt.now); got != tt.fires {
			t.Fatalf("prev=%v now=%v fired=%v, want %v", tt.prev, tt.now, got, tt.fires)
		}
		if stored := !d.Rising(RoleToggle, true); stored != tt.now {
			t.Fatalf("stored state = %v, want %v", stored, tt.now)
		}
	}
}

func TestRisingHeldKeyFiresOnce(t *testing.T) {
	var d Detector
	fired := 0
	for range 50 {
		if d.Rising(RolePart1, true) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("held key fired %d times, want 1", fired)
	}
}

func TestRolesAreIndependent(t *testing.T) {
	var d Detector
	if !d.Rising(RolePart1, true) {
		t.Fatalf("part1 should fire")
	}
	if !d.Rising(RolePart2, true) {
		t.Fatalf("part2 should fire independently of part1")
	}
	if !d.Rising(RoleVisibility, true) {
		t.Fatalf("visibility should be untouched")
	}
}

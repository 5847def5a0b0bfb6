package keymap

import "strconv"

// Kind classifies a symbolic key.
type Kind uint8

const (
	KindLetter Kind = iota + 1
	KindDigit
	KindFunction
	KindModifier
	KindControl
	KindMouseButton
)

// Modifier keys. Left and right variants are distinct for detection but
// share a virtual key for injection.
const (
	ShiftLeft = iota + 1
	ShiftRight
	ControlLeft
	ControlRight
	AltLeft
	AltRight
)

// Whitespace and control keys.
const (
	Space = iota + 1
	Enter
	Escape
	Backspace
	Tab
	CapsLock
	Insert
)

// Key is a symbolic key identifier resolved once from its external string
// form. N is the letter ('A'..'Z'), digit (0..9), function number (1..12),
// modifier/control constant or mouse button number (3..5) depending on Kind.
type Key struct {
	Kind Kind
	N    int
}

var modifierNames = map[string]int{
	"ShiftLeft":    ShiftLeft,
	"ShiftRight":   ShiftRight,
	"ControlLeft":  ControlLeft,
	"ControlRight": ControlRight,
	"AltLeft":      AltLeft,
	"AltRight":     AltRight,
}

var controlNames = map[string]int{
	"Space":     Space,
	"Enter":     Enter,
	"Escape":    Escape,
	"Backspace": Backspace,
	"Tab":       Tab,
	"CapsLock":  CapsLock,
	"Insert":    Insert,
}

// Parse turns an identifier such as "KeyA", "Digit6", "F12", "AltLeft" or
// "Mouse4" into a Key. Unknown identifiers report ok == false.
func Parse(id string) (Key, bool) {
	switch {
	case len(id) == 4 && id[:3] == "Key":
		if c := id[3]; c >= 'A' && c <= 'Z' {
			return Key{Kind: KindLetter, N: int(c)}, true
		}
		return Key{}, false
	case len(id) == 6 && id[:5] == "Digit":
		if c := id[5]; c >= '0' && c <= '9' {
			return Key{Kind: KindDigit, N: int(c - '0')}, true
		}
		return Key{}, false
	case len(id) == 6 && id[:5] == "Mouse":
		if c := id[5]; c >= '3' && c <= '5' {
			return Key{Kind: KindMouseButton, N: int(c - '0')}, true
		}
		return Key{}, false
	case len(id) >= 2 && len(id) <= 3 && id[0] == 'F':
		n, err := strconv.Atoi(id[1:])
		if err != nil || n < 1 || n > 12 || id[1] == '0' {
			return Key{}, false
		}
		return Key{Kind: KindFunction, N: n}, true
	}
	if n, ok := modifierNames[id]; ok {
		return Key{Kind: KindModifier, N: n}, true
	}
	if n, ok := controlNames[id]; ok {
		return Key{Kind: KindControl, N: n}, true
	}
	return Key{}, false
}

// MustParse is Parse for identifiers known at compile time.
func MustParse(id string) Key {
	k, ok := Parse(id)
	if !ok {
		panic("keymap: unknown key " + strconv.Quote(id))
	}
	return k
}

// MouseButton reports the mouse button number for Mouse3..Mouse5.
func (k Key) MouseButton() (int, bool) {
	if k.Kind != KindMouseButton {
		return 0, false
	}
	return k.N, true
}

// String returns the identifier Parse accepts.
func (k Key) String() string {
	switch k.Kind {
	case KindLetter:
		return "Key" + string(rune(k.N))
	case KindDigit:
		return "Digit" + strconv.Itoa(k.N)
	case KindFunction:
		return "F" + strconv.Itoa(k.N)
	case KindMouseButton:
		return "Mouse" + strconv.Itoa(k.N)
	case KindModifier:
		for name, n := range modifierNames {
			if n == k.N {
				return name
			}
		}
	case KindControl:
		for name, n := range controlNames {
			if n == k.N {
				return name
			}
		}
	}
	return ""
}

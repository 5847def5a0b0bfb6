package keymap

// libuiohook virtual key codes, the code space gohook reports in
// Event.Keycode. Letters and digits follow the PC/AT scan code layout.
var letterCodes = [26]uint16{
	0x001E, 0x0030, 0x002E, 0x0020, 0x0012, 0x0021, 0x0022, 0x0023, 0x0017, // A-I
	0x0024, 0x0025, 0x0026, 0x0032, 0x0031, 0x0018, 0x0019, 0x0010, 0x0013, // J-R
	0x001F, 0x0014, 0x0016, 0x002F, 0x0011, 0x002D, 0x0015, 0x002C, // S-Z
}

var digitCodes = [10]uint16{
	0x000B, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006, 0x0007, 0x0008, 0x0009, 0x000A,
}

var functionCodes = [12]uint16{
	0x003B, 0x003C, 0x003D, 0x003E, 0x003F, 0x0040,
	0x0041, 0x0042, 0x0043, 0x0044, 0x0057, 0x0058,
}

var modifierCodes = map[int]uint16{
	ShiftLeft:    0x002A,
	ShiftRight:   0x0036,
	ControlLeft:  0x001D,
	ControlRight: 0x0E1D,
	AltLeft:      0x0038,
	AltRight:     0x0E38,
}

var controlCodes = map[int]uint16{
	Space:     0x0039,
	Enter:     0x001C,
	Escape:    0x0001,
	Backspace: 0x000E,
	Tab:       0x000F,
	CapsLock:  0x003A,
	Insert:    0x0E52,
}

// Win32 virtual-key codes.
const (
	VKBack    uint16 = 0x08
	VKTab     uint16 = 0x09
	VKReturn  uint16 = 0x0D
	VKShift   uint16 = 0x10
	VKControl uint16 = 0x11
	VKMenu    uint16 = 0x12
	VKCapital uint16 = 0x14
	VKEscape  uint16 = 0x1B
	VKSpace   uint16 = 0x20
	VKInsert  uint16 = 0x2D
	VKF1      uint16 = 0x70
)

var modifierVKs = map[int]uint16{
	ShiftLeft:    VKShift,
	ShiftRight:   VKShift,
	ControlLeft:  VKControl,
	ControlRight: VKControl,
	AltLeft:      VKMenu,
	AltRight:     VKMenu,
}

var controlVKs = map[int]uint16{
	Space:     VKSpace,
	Enter:     VKReturn,
	Escape:    VKEscape,
	Backspace: VKBack,
	Tab:       VKTab,
	CapsLock:  VKCapital,
	Insert:    VKInsert,
}

// DetectionCode returns the polling code for k. Mouse buttons have none.
func DetectionCode(k Key) (uint16, bool) {
	switch k.Kind {
	case KindLetter:
		if k.N >= 'A' && k.N <= 'Z' {
			return letterCodes[k.N-'A'], true
		}
	case KindDigit:
		if k.N >= 0 && k.N <= 9 {
			return digitCodes[k.N], true
		}
	case KindFunction:
		if k.N >= 1 && k.N <= 12 {
			return functionCodes[k.N-1], true
		}
	case KindModifier:
		c, ok := modifierCodes[k.N]
		return c, ok
	case KindControl:
		c, ok := controlCodes[k.N]
		return c, ok
	}
	return 0, false
}

// VirtualKey returns the injection code for k. Mouse buttons have none and
// go through the mouse button primitive instead.
func VirtualKey(k Key) (uint16, bool) {
	switch k.Kind {
	case KindLetter:
		if k.N >= 'A' && k.N <= 'Z' {
			return uint16(k.N), true
		}
	case KindDigit:
		if k.N >= 0 && k.N <= 9 {
			return uint16('0' + k.N), true
		}
	case KindFunction:
		if k.N >= 1 && k.N <= 12 {
			return VKF1 + uint16(k.N-1), true
		}
	case KindModifier:
		vk, ok := modifierVKs[k.N]
		return vk, ok
	case KindControl:
		vk, ok := controlVKs[k.N]
		return vk, ok
	}
	return 0, false
}

// ResolveForDetection parses id and returns its polling code.
func ResolveForDetection(id string) (uint16, bool) {
	k, ok := Parse(id)
	if !ok {
		return 0, false
	}
	return DetectionCode(k)
}

// ResolveForInjection parses id and returns its virtual key.
func ResolveForInjection(id string) (uint16, bool) {
	k, ok := Parse(id)
	if !ok {
		return 0, false
	}
	return VirtualKey(k)
}

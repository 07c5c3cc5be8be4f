package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// chordSpec is a parsed chord: modifier flags plus exactly one key.
type chordSpec struct {
	ctrl  bool
	alt   bool
	shift bool
	win   bool
	key   string
}

// parseChord parses a chord like "Alt+Shift+A" into a chordSpec.
func parseChord(raw string) (chordSpec, error) {
	var spec chordSpec
	for _, part := range strings.Split(strings.ToLower(raw), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "ctrl", "control":
			spec.ctrl = true
		case "alt":
			spec.alt = true
		case "shift":
			spec.shift = true
		case "win", "cmd", "super", "meta":
			spec.win = true
		default:
			if spec.key != "" {
				return chordSpec{}, fmt.Errorf("chord %q has multiple keys", raw)
			}
			spec.key = part
		}
	}
	if spec.key == "" {
		return chordSpec{}, fmt.Errorf("chord %q has no key", raw)
	}
	if _, ok := virtualKey(spec.key); !ok {
		return chordSpec{}, fmt.Errorf("chord %q has unknown key %q", raw, spec.key)
	}
	return spec, nil
}

// modifierNames lists the modifiers of the chord in registration order.
func (c chordSpec) modifierNames() []string {
	var names []string
	if c.ctrl {
		names = append(names, "ctrl")
	}
	if c.alt {
		names = append(names, "alt")
	}
	if c.shift {
		names = append(names, "shift")
	}
	if c.win {
		names = append(names, "win")
	}
	return names
}

// virtualKey resolves a key name to its Windows virtual-key value.
func virtualKey(name string) (uint32, bool) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c-'a') + 0x41, true
		case c >= '0' && c <= '9':
			return uint32(c-'0') + 0x30, true
		}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(name, "f")); err == nil && strings.HasPrefix(name, "f") {
		if n >= 1 && n <= 24 {
			return 0x70 + uint32(n-1), true // VK_F1..VK_F24
		}
		return 0, false
	}
	vk, ok := specialKeys[name]
	return vk, ok
}

var specialKeys = map[string]uint32{
	"space":     0x20,
	"enter":     0x0D,
	"return":    0x0D,
	"esc":       0x1B,
	"escape":    0x1B,
	"tab":       0x09,
	"backspace": 0x08,
	"delete":    0x2E,
	"del":       0x2E,
	"insert":    0x2D,
	"ins":       0x2D,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pgup":      0x21,
	"pagedown":  0x22,
	"pgdn":      0x22,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
}

// rawcodes maps a key or modifier name to the rawcodes the input stream
// may report for it. On Windows the stream carries virtual-key values; on
// the X11 path it carries keysyms, so both sets are listed (and modifiers
// yield left and right variants of each).
func rawcodes(name string) []uint16 {
	switch name {
	case "ctrl":
		return []uint16{162, 163, 0xFFE3, 0xFFE4} // VK_L/RCONTROL, XK_Control_L/R
	case "alt":
		return []uint16{164, 165, 0xFFE9, 0xFFEA} // VK_L/RMENU, XK_Alt_L/R
	case "shift":
		return []uint16{160, 161, 0xFFE1, 0xFFE2} // VK_L/RSHIFT, XK_Shift_L/R
	case "win":
		return []uint16{91, 92, 0xFFEB, 0xFFEC} // VK_L/RWIN, XK_Super_L/R
	}
	vk, ok := virtualKey(name)
	if !ok {
		return nil
	}
	codes := []uint16{uint16(vk)}
	for _, ks := range keysyms(name) {
		if ks != uint16(vk) {
			codes = append(codes, ks)
		}
	}
	return codes
}

// keysyms returns the X11 keysym values for a key name. Letters, digits
// and space have ASCII keysyms; function and navigation keys live in the
// 0xFFxx range.
func keysyms(name string) []uint16 {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c)} // XK_a..XK_z
		case c >= '0' && c <= '9':
			return []uint16{uint16(c)} // XK_0..XK_9
		}
	}
	if strings.HasPrefix(name, "f") {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 24 {
			return []uint16{uint16(0xFFBE + n - 1)} // XK_F1..XK_F24
		}
	}
	if ks, ok := specialKeysyms[name]; ok {
		return []uint16{ks}
	}
	return nil
}

var specialKeysyms = map[string]uint16{
	"space":     0x20,
	"enter":     0xFF0D,
	"return":    0xFF0D,
	"esc":       0xFF1B,
	"escape":    0xFF1B,
	"tab":       0xFF09,
	"backspace": 0xFF08,
	"delete":    0xFFFF,
	"del":       0xFFFF,
	"insert":    0xFF63,
	"ins":       0xFF63,
	"home":      0xFF50,
	"end":       0xFF57,
	"pageup":    0xFF55,
	"pgup":      0xFF55,
	"pagedown":  0xFF56,
	"pgdn":      0xFF56,
	"left":      0xFF51,
	"up":        0xFF52,
	"right":     0xFF53,
	"down":      0xFF54,
}

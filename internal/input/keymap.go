// File: internal/input/keymap.go
package input

// virtualKeys is the fixed vocabulary of named keys the agent may press,
// mapped to Windows virtual-key codes.
var virtualKeys = map[string]uint16{
	"enter":     0x0D,
	"escape":    0x1B,
	"esc":       0x1B,
	"tab":       0x09,
	"windows":   0x5B,
	"win":       0x5B,
	"backspace": 0x08,
	"delete":    0x2E,
	"del":       0x2E,
	"space":     0x20,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,
}

// lookupKey resolves a key name to its virtual-key code.
func lookupKey(name string) (uint16, bool) {
	vk, ok := virtualKeys[name]
	return vk, ok
}

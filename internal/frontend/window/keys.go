// Package window implements a desktop window frontend.
package window

import (
	"github.com/retroenv/retrochip8/internal/keypad"
)

// hostKey identifies a host key by the character it produces in the
// QWERTY layout.
type hostKey struct {
	char rune
	code int
}

// binding maps a host key code to a keypad code.
type binding struct {
	code int
	key  byte
}

// keyBindings resolves the host keys of a layout to keypad codes. The
// bindings keep the order of keys so that key edges of the same tick are
// forwarded in a stable order.
func keyBindings(layout keypad.Layout, keys []hostKey) []binding {
	bindings := make([]binding, 0, len(keys))
	for _, k := range keys {
		if key, ok := layout.Key(k.char); ok {
			bindings = append(bindings, binding{code: k.code, key: key})
		}
	}
	return bindings
}

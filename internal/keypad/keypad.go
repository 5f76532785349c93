// Package keypad tracks the state of the 16 key hexadecimal keypad.
package keypad

import "fmt"

// KeyCount is the number of keys on the keypad, codes are 0x0-0xF.
const KeyCount = 16

// Event is a key edge reported by the host.
type Event struct {
	Key  byte
	Down bool
}

func (e Event) String() string {
	if e.Down {
		return fmt.Sprintf("key %X down", e.Key)
	}
	return fmt.Sprintf("key %X up", e.Key)
}

// Keypad is the set of currently pressed keys.
type Keypad struct {
	pressed [KeyCount]bool
}

// New returns a keypad with no key pressed.
func New() *Keypad {
	return &Keypad{}
}

// IsPressed returns whether the key is currently held down.
// Values outside of the keypad range are never pressed.
func (k *Keypad) IsPressed(key byte) bool {
	if key >= KeyCount {
		return false
	}
	return k.pressed[key]
}

// Down marks the key as pressed.
func (k *Keypad) Down(key byte) {
	if key < KeyCount {
		k.pressed[key] = true
	}
}

// Up marks the key as released and returns whether it was pressed before.
func (k *Keypad) Up(key byte) bool {
	if key >= KeyCount {
		return false
	}
	wasDown := k.pressed[key]
	k.pressed[key] = false
	return wasDown
}

// Apply processes a key edge event. For key releases it returns whether
// the key was pressed before.
func (k *Keypad) Apply(event Event) bool {
	if event.Down {
		k.Down(event.Key)
		return false
	}
	return k.Up(event.Key)
}

// Pressed returns the codes of all pressed keys in ascending order.
func (k *Keypad) Pressed() []byte {
	var keys []byte
	for key, down := range k.pressed {
		if down {
			keys = append(keys, byte(key))
		}
	}
	return keys
}

package vm

// Memory layout and register file dimensions.
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000

	// AddressMask selects the architecturally meaningful 12 address bits.
	AddressMask = MemorySize - 1

	// FontAddress is the address of the first built-in font glyph.
	FontAddress = 0x000

	// FontEnd is the first address after the built-in font table.
	// Program I/O must never write below this address.
	FontEnd = FontAddress + 16*GlyphSize

	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5

	// DefaultOrigin is the conventional program load and entry address.
	DefaultOrigin = 0x200

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, the carry/borrow/collision flag.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

// State is the complete mutable machine state.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16
	Stack  []uint16

	DelayTimer byte
	SoundTimer byte

	// WaitingForKey is set while execution is suspended by Fx0A.
	WaitingForKey bool
	// KeyRegister is the destination register of the pending Fx0A.
	KeyRegister uint8
}

// newState returns a zeroed state with the font loaded and the program
// counter set to origin.
func newState(origin uint16) State {
	s := State{
		PC:    origin,
		Stack: make([]uint16, 0, StackDepth),
	}
	copy(s.Memory[FontAddress:], font[:])
	return s
}

// clone returns a deep copy of the state.
func (s State) clone() State {
	s.Stack = append([]uint16(nil), s.Stack...)
	return s
}

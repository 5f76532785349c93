package vm

import (
	"fmt"
	"math/rand/v2"
)

// Display is the view of the display bitmap that the interpreter writes to.
type Display interface {
	// Clear turns all pixels off.
	Clear()
	// DrawSprite XORs the sprite rows onto the bitmap at (x, y), wrapping
	// both axes, and reports whether a set pixel was turned off.
	DrawSprite(x, y byte, rows []byte) bool
}

// Keys is the read-only view of the currently pressed keypad keys.
type Keys interface {
	IsPressed(key byte) bool
}

// Config contains the interpreter settings.
type Config struct {
	Origin uint16
	Quirks Quirks

	// Random returns a uniformly distributed byte for Cxnn,
	// a math/rand source is used if nil.
	Random func() byte
}

// DefaultConfig returns the default interpreter configuration.
func DefaultConfig() Config {
	return Config{
		Origin: DefaultOrigin,
		Quirks: DefaultQuirks(),
	}
}

// CPU is the CHIP-8 interpreter core. It is not safe for concurrent use,
// a single driver has to own it.
type CPU struct {
	State

	display Display
	keys    Keys
	quirks  Quirks
	random  func() byte
	origin  uint16
}

// New returns a new interpreter with the font loaded and the program
// counter set to the configured origin.
func New(display Display, keys Keys, cfg Config) *CPU {
	random := cfg.Random
	if random == nil {
		random = func() byte {
			return byte(rand.UintN(256))
		}
	}

	return &CPU{
		State:   newState(cfg.Origin),
		display: display,
		keys:    keys,
		quirks:  cfg.Quirks,
		random:  random,
		origin:  cfg.Origin,
	}
}

// Load copies the program verbatim into memory at the origin address.
// Instructions are not validated, malformed words are reported when they
// are executed.
func (c *CPU) Load(rom []byte) error {
	origin := int(c.origin)
	if origin < FontEnd || origin >= MemorySize {
		return fmt.Errorf("%w: $%04X", ErrInvalidOrigin, origin)
	}
	if origin+len(rom) > MemorySize {
		return fmt.Errorf("%w: %d bytes at $%04X exceed %d bytes of memory",
			ErrProgramTooLarge, len(rom), origin, MemorySize)
	}

	copy(c.Memory[origin:], rom)
	return nil
}

// Origin returns the program load and entry address.
func (c *CPU) Origin() uint16 {
	return c.origin
}

// Snapshot returns a copy of the current machine state.
func (c *CPU) Snapshot() State {
	return c.State.clone()
}

// Fetch returns the instruction word at the program counter without
// executing it.
func (c *CPU) Fetch() (uint16, error) {
	address := int(c.PC)
	if address+1 >= MemorySize {
		return 0, &AddressError{Address: address, Err: ErrAddressOutOfRange}
	}
	return uint16(c.Memory[address])<<8 | uint16(c.Memory[address+1]), nil
}

// Step executes a single instruction. While waiting for a keypress no
// instruction is executed and WaitForKeypress is returned.
// The program counter is advanced before the instruction body runs, so
// CALL pushes the address of the following instruction.
func (c *CPU) Step() (Signal, error) {
	if c.WaitingForKey {
		return WaitForKeypress, nil
	}

	word, err := c.Fetch()
	if err != nil {
		return Continue, err
	}
	c.PC += 2

	return c.execute(Decode(word))
}

// AwaitingKey returns whether execution is suspended until a key release.
func (c *CPU) AwaitingKey() bool {
	return c.WaitingForKey
}

// ResolveKey completes a pending Fx0A by storing key in the destination
// register and resuming execution at the instruction following Fx0A.
// It returns false if no keypress was awaited.
func (c *CPU) ResolveKey(key byte) bool {
	if !c.WaitingForKey {
		return false
	}
	c.V[c.KeyRegister] = key & (KeyCount - 1)
	c.WaitingForKey = false
	return true
}

// TickTimers decrements the delay and sound timers by one, stopping at 0.
// The timers are frozen while waiting for a keypress unless the
// TimersRunWhileWaiting quirk is enabled.
func (c *CPU) TickTimers() {
	if c.WaitingForKey && !c.quirks.TimersRunWhileWaiting {
		return
	}
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// readMemory returns length bytes starting at address.
func (c *CPU) readMemory(address uint16, length int) ([]byte, error) {
	start := int(address)
	if start+length > MemorySize {
		return nil, &AddressError{Address: start + length - 1, Err: ErrAddressOutOfRange}
	}
	return c.Memory[start : start+length], nil
}

// writeMemory copies data to memory starting at address.
func (c *CPU) writeMemory(address uint16, data ...byte) error {
	start := int(address)
	if start < FontEnd {
		return &AddressError{Address: start, Err: ErrProtectedWrite}
	}
	if start+len(data) > MemorySize {
		return &AddressError{Address: start + len(data) - 1, Err: ErrAddressOutOfRange}
	}
	copy(c.Memory[start:], data)
	return nil
}

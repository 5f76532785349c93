package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	assert.Equal(t, uint16(DefaultOrigin), c.PC)
	assert.Equal(t, font[:], c.Memory[FontAddress:FontEnd])
	assert.Equal(t, 0, len(c.Stack))
	assert.False(t, c.AwaitingKey())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		origin uint16
		size   int
		err    error
	}{
		{"default origin", DefaultOrigin, 16, nil},
		{"fills memory", DefaultOrigin, MemorySize - DefaultOrigin, nil},
		{"origin after font", uint16(FontEnd), 2, nil},
		{"too large", DefaultOrigin, MemorySize - DefaultOrigin + 1, ErrProgramTooLarge},
		{"origin inside font", 0x000, 2, ErrInvalidOrigin},
		{"origin beyond memory", MemorySize, 2, ErrInvalidOrigin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Origin = tt.origin
			c := New(&mockDisplay{}, mockKeys{}, cfg)

			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = byte(i)
			}

			err := c.Load(rom)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.origin, c.PC)
			assert.Equal(t, rom, c.Memory[int(tt.origin):int(tt.origin)+tt.size])
		})
	}
}

func TestLoadImmediateRoundTrip(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	for r := range uint16(RegisterCount) {
		for v := range uint16(256) {
			_, err := c.execute(Decode(0x6000 | r<<8 | v))
			assert.NoError(t, err)
			assert.Equal(t, byte(v), c.V[r])
		}
	}
}

func TestStepAdvancesProgramCounter(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	assert.NoError(t, loadProgram(c, 0x6142, 0x7101))

	sig, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, Continue, sig)
	assert.Equal(t, uint16(DefaultOrigin+2), c.PC)

	_, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x43), c.V[1])
	assert.Equal(t, uint16(DefaultOrigin+4), c.PC)
}

func TestStepFetchOutOfRange(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.PC = 0xFFF

	_, err := c.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.Equal(t, uint16(0xFFF), c.PC)
}

func TestAddWithCarry(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.V[0x1] = 0xFE
	c.V[0x2] = 0x01

	_, err := c.execute(Decode(0x8124))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFF), c.V[0x1])
	assert.Equal(t, byte(0), c.V[FlagRegister])

	_, err = c.execute(Decode(0x8124))
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), c.V[0x1])
	assert.Equal(t, byte(1), c.V[FlagRegister])
}

func TestSubtractNotBorrow(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.V[0x1] = 0x01
	c.V[0x2] = 0x01

	_, err := c.execute(Decode(0x8125))
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), c.V[0x1])
	assert.Equal(t, byte(1), c.V[FlagRegister])

	_, err = c.execute(Decode(0x8125))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFF), c.V[0x1])
	assert.Equal(t, byte(0), c.V[FlagRegister])
}

func TestSubtractReverse(t *testing.T) {
	tests := []struct {
		name string
		vx   byte
		vy   byte
		want byte
		flag byte
	}{
		{"no borrow", 0x10, 0x30, 0x20, 1},
		{"equal", 0x10, 0x10, 0x00, 1},
		{"borrow", 0x30, 0x10, 0xE0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(DefaultQuirks())
			c.V[0x3] = tt.vx
			c.V[0x4] = tt.vy

			_, err := c.execute(Decode(0x8347))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, c.V[0x3])
			assert.Equal(t, tt.flag, c.V[FlagRegister])
		})
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		quirks Quirks
		vx     byte
		vy     byte
		want   byte
		flag   byte
	}{
		{"shr from vy high nibble", 0x8126, DefaultQuirks(), 0x00, 0b11110000, 0b01111000, 0},
		{"shr from vy low nibble", 0x8126, DefaultQuirks(), 0x00, 0b00001111, 0b00000111, 1},
		{"shl from vy", 0x812E, DefaultQuirks(), 0x00, 0b10000001, 0b00000010, 1},
		{"shl from vy no carry", 0x812E, DefaultQuirks(), 0xFF, 0b01000000, 0b10000000, 0},
		{"shr in place", 0x8126, Quirks{ShiftUsesVx: true}, 0b00000011, 0xFF, 0b00000001, 1},
		{"shl in place", 0x812E, Quirks{ShiftUsesVx: true}, 0b01000000, 0xFF, 0b10000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(tt.quirks)
			c.V[0x1] = tt.vx
			c.V[0x2] = tt.vy

			_, err := c.execute(Decode(tt.word))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, c.V[0x1])
			assert.Equal(t, tt.flag, c.V[FlagRegister])
		})
	}
}

func TestFlagWinsForRegisterF(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.V[0xF] = 0x10
	c.V[0x1] = 0x02

	_, err := c.execute(Decode(0x8F14))
	assert.NoError(t, err)
	assert.Equal(t, byte(0), c.V[FlagRegister])
}

func TestShiftResultWinsForRegisterF(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		vy   byte
		want byte
	}{
		{"shr", 0x8F16, 0x04, 0x02},
		{"shr with carry", 0x8F16, 0x05, 0x02},
		{"shl", 0x8F1E, 0x81, 0x02},
		{"shl no carry", 0x8F1E, 0x01, 0x02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(DefaultQuirks())
			c.V[0x1] = tt.vy

			_, err := c.execute(Decode(tt.word))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, c.V[FlagRegister])
		})
	}
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		word uint16
		want byte
	}{
		{0x8120, 0b0101_0101},
		{0x8121, 0b1111_0101},
		{0x8122, 0b0000_0000},
		{0x8123, 0b1111_0101},
	}

	for _, tt := range tests {
		c, _, _ := newTestCPU(DefaultQuirks())
		c.V[0x1] = 0b1010_0000
		c.V[0x2] = 0b0101_0101
		c.V[FlagRegister] = 0x42

		_, err := c.execute(Decode(tt.word))
		assert.NoError(t, err)
		assert.Equal(t, tt.want, c.V[0x1])
		assert.Equal(t, byte(0x42), c.V[FlagRegister])
	}
}

func TestAddByteWrapsWithoutFlag(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.V[0x5] = 0xF0

	_, err := c.execute(Decode(0x7520))
	assert.NoError(t, err)
	assert.Equal(t, byte(0x10), c.V[0x5])
	assert.Equal(t, byte(0), c.V[FlagRegister])
}

func TestCallReturn(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.PC = 0x1234

	_, err := c.execute(Decode(0x2042))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x042), c.PC)
	assert.Equal(t, []uint16{0x1234}, c.Stack)

	_, err = c.execute(Decode(0x00EE))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, 0, len(c.Stack))
}

func TestCallPushesFollowingInstruction(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	assert.NoError(t, loadProgram(c, 0x2300))

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x300), c.PC)
	assert.Equal(t, []uint16{DefaultOrigin + 2}, c.Stack)
}

func TestStackUnderflow(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	_, err := c.execute(Decode(0x00EE))
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestStackOverflow(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	for range StackDepth {
		_, err := c.execute(Decode(0x2300))
		assert.NoError(t, err)
	}
	_, err := c.execute(Decode(0x2300))
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, len(c.Stack))
}

func TestJumps(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	_, err := c.execute(Decode(0x1ABC))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABC), c.PC)

	c.V[0] = 0x10
	_, err = c.execute(Decode(0xB300))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x310), c.PC)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		vx   byte
		vy   byte
		skip bool
	}{
		{"SE byte equal", 0x3142, 0x42, 0, true},
		{"SE byte not equal", 0x3142, 0x41, 0, false},
		{"SNE byte equal", 0x4142, 0x42, 0, false},
		{"SNE byte not equal", 0x4142, 0x41, 0, true},
		{"SE register equal", 0x5120, 0x07, 0x07, true},
		{"SE register not equal", 0x5120, 0x07, 0x08, false},
		{"SNE register equal", 0x9120, 0x07, 0x07, false},
		{"SNE register not equal", 0x9120, 0x07, 0x08, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(DefaultQuirks())
			c.V[0x1] = tt.vx
			c.V[0x2] = tt.vy

			_, err := c.execute(Decode(tt.word))
			assert.NoError(t, err)
			if tt.skip {
				assert.Equal(t, uint16(DefaultOrigin+2), c.PC)
			} else {
				assert.Equal(t, uint16(DefaultOrigin), c.PC)
			}
		})
	}
}

func TestRegisterSkipWithNonZeroNibbleIsUnknown(t *testing.T) {
	for _, word := range []uint16{0x5121, 0x512F, 0x9121, 0x912F} {
		c, _, _ := newTestCPU(DefaultQuirks())
		c.PC = DefaultOrigin + 2

		_, err := c.execute(Decode(word))
		var unknown *UnknownInstructionError
		assert.True(t, errors.As(err, &unknown))
		assert.Equal(t, word, unknown.Word)
		assert.Equal(t, uint16(DefaultOrigin), unknown.Address)
	}
}

func TestUnknownInstruction(t *testing.T) {
	words := []uint16{0x0000, 0x0123, 0x00E1, 0x8128, 0x812F, 0xE19F, 0xF100, 0xF156}

	for _, word := range words {
		c, _, _ := newTestCPU(DefaultQuirks())
		assert.NoError(t, loadProgram(c, word))

		_, err := c.Step()
		assert.True(t, errors.Is(err, ErrUnknownInstruction))

		var unknown *UnknownInstructionError
		assert.True(t, errors.As(err, &unknown))
		assert.Equal(t, word, unknown.Word)
	}
}

func TestIndexRegister(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	_, err := c.execute(Decode(0xA123))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x123), c.I)

	c.I = 0xFFE
	c.V[0x3] = 0x05
	_, err = c.execute(Decode(0xF31E))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x003), c.I)
}

func TestRandomIsMasked(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())

	_, err := c.execute(Decode(0xC40F))
	assert.NoError(t, err)
	assert.Equal(t, byte(0xA5&0x0F), c.V[0x4])
}

func TestRandomDefaultSource(t *testing.T) {
	c := New(&mockDisplay{}, mockKeys{}, DefaultConfig())

	_, err := c.execute(Decode(0xC400))
	assert.NoError(t, err)
	assert.Equal(t, byte(0), c.V[0x4])
}

func TestClearScreen(t *testing.T) {
	c, display, _ := newTestCPU(DefaultQuirks())
	display.pixels[3][3] = true

	sig, err := c.execute(Decode(0x00E0))
	assert.NoError(t, err)
	assert.Equal(t, RedrawRequested, sig)
	assert.Equal(t, 1, display.cleared)
	assert.False(t, display.pixels[3][3])
}

func TestDrawSprite(t *testing.T) {
	c, display, _ := newTestCPU(DefaultQuirks())
	c.I = 0x300
	c.Memory[0x300] = 0b10000000
	c.V[0x1] = 62
	c.V[0x2] = 30

	sig, err := c.execute(Decode(0xD121))
	assert.NoError(t, err)
	assert.Equal(t, RedrawRequested, sig)
	assert.True(t, display.pixels[30][62])
	assert.False(t, display.pixels[31][62])
	assert.Equal(t, byte(0), c.V[FlagRegister])

	sig, err = c.execute(Decode(0xD121))
	assert.NoError(t, err)
	assert.Equal(t, RedrawRequested, sig)
	assert.False(t, display.pixels[30][62])
	assert.Equal(t, byte(1), c.V[FlagRegister])
}

func TestDrawSpriteWrapsHorizontally(t *testing.T) {
	c, display, _ := newTestCPU(DefaultQuirks())
	c.I = 0x300
	c.Memory[0x300] = 0b11000000
	c.V[0x1] = 63
	c.V[0x2] = 0

	_, err := c.execute(Decode(0xD121))
	assert.NoError(t, err)
	assert.True(t, display.pixels[0][63])
	assert.True(t, display.pixels[0][0])
	assert.False(t, display.pixels[0][1])
}

func TestDrawSpriteOutOfRange(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.I = 0xFFE

	_, err := c.execute(Decode(0xD125))
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestDrawGlyph(t *testing.T) {
	c, display, _ := newTestCPU(DefaultQuirks())
	c.V[0x0] = 0x1

	_, err := c.execute(Decode(0xF029))
	assert.NoError(t, err)
	assert.Equal(t, uint16(5), c.I)

	_, err = c.execute(Decode(0xD235))
	assert.NoError(t, err)
	// glyph "1" starts with 0x20: a single pixel in column 2
	assert.True(t, display.pixels[0][2])
	assert.False(t, display.pixels[0][1])
	// last row 0x70: columns 1-3
	assert.True(t, display.pixels[4][1])
	assert.True(t, display.pixels[4][3])
}

func TestKeySkips(t *testing.T) {
	c, _, keys := newTestCPU(DefaultQuirks())
	c.V[0x1] = 0xA
	keys[0xA] = true

	_, err := c.execute(Decode(0xE19E))
	assert.NoError(t, err)
	assert.Equal(t, uint16(DefaultOrigin+2), c.PC)

	_, err = c.execute(Decode(0xE1A1))
	assert.NoError(t, err)
	assert.Equal(t, uint16(DefaultOrigin+2), c.PC)

	keys[0xA] = false
	_, err = c.execute(Decode(0xE1A1))
	assert.NoError(t, err)
	assert.Equal(t, uint16(DefaultOrigin+4), c.PC)
}

func TestTimers(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.V[0x1] = 2
	c.V[0x2] = 1

	_, err := c.execute(Decode(0xF115))
	assert.NoError(t, err)
	_, err = c.execute(Decode(0xF218))
	assert.NoError(t, err)
	assert.Equal(t, byte(2), c.DelayTimer)
	assert.Equal(t, byte(1), c.SoundTimer)

	c.TickTimers()
	assert.Equal(t, byte(1), c.DelayTimer)
	assert.Equal(t, byte(0), c.SoundTimer)

	_, err = c.execute(Decode(0xF307))
	assert.NoError(t, err)
	assert.Equal(t, byte(1), c.V[0x3])

	c.TickTimers()
	c.TickTimers()
	assert.Equal(t, byte(0), c.DelayTimer)
	assert.Equal(t, byte(0), c.SoundTimer)
}

func TestTimersWhileAwaitingKey(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		delay  byte
	}{
		{"frozen", DefaultQuirks(), 5},
		{"running", Quirks{TimersRunWhileWaiting: true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(tt.quirks)
			c.DelayTimer = 5
			c.SoundTimer = 5

			_, err := c.execute(Decode(0xF00A))
			assert.NoError(t, err)
			c.TickTimers()
			assert.Equal(t, tt.delay, c.DelayTimer)
			assert.Equal(t, tt.delay, c.SoundTimer)
		})
	}
}

func TestAwaitKey(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	assert.NoError(t, loadProgram(c, 0xF50A, 0x6001))

	sig, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, WaitForKeypress, sig)
	assert.True(t, c.AwaitingKey())
	assert.Equal(t, uint16(DefaultOrigin+2), c.PC)

	// no instruction executes while waiting
	sig, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, WaitForKeypress, sig)
	assert.Equal(t, uint16(DefaultOrigin+2), c.PC)
	assert.Equal(t, byte(0), c.V[0x0])

	assert.True(t, c.ResolveKey(0xC))
	assert.False(t, c.AwaitingKey())
	assert.Equal(t, byte(0xC), c.V[0x5])
	assert.False(t, c.ResolveKey(0xD))

	_, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), c.V[0x0])
	assert.Equal(t, uint16(DefaultOrigin+4), c.PC)
}

func TestBCD(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.I = 0x300
	c.V[0x7] = 254

	_, err := c.execute(Decode(0xF733))
	assert.NoError(t, err)
	assert.Equal(t, []byte{2, 5, 4}, c.Memory[0x300:0x303])
	assert.Equal(t, uint16(0x300), c.I)
}

func TestBCDProtectsFont(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.I = 0x010

	_, err := c.execute(Decode(0xF033))
	assert.True(t, errors.Is(err, ErrProtectedWrite))
	assert.Equal(t, font[:], c.Memory[FontAddress:FontEnd])
}

func TestStoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name      string
		quirks    Quirks
		index     uint16
		loadIndex uint16
	}{
		{"increments index", DefaultQuirks(), 0x304, 0x303},
		{"keeps index", Quirks{}, 0x300, 0x300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(tt.quirks)
			c.I = 0x300
			c.V = [RegisterCount]byte{1, 2, 3, 4, 5}

			_, err := c.execute(Decode(0xF355))
			assert.NoError(t, err)
			assert.Equal(t, []byte{1, 2, 3, 4, 0}, c.Memory[0x300:0x305])
			assert.Equal(t, tt.index, c.I)

			c.I = 0x300
			c.V = [RegisterCount]byte{}
			_, err = c.execute(Decode(0xF265))
			assert.NoError(t, err)
			assert.Equal(t, [RegisterCount]byte{1, 2, 3}, c.V)
			assert.Equal(t, tt.loadIndex, c.I)
		})
	}
}

func TestLoadRegistersOutOfRange(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	c.I = 0xFFE

	_, err := c.execute(Decode(0xF265))
	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
	assert.Equal(t, 0x1000, addrErr.Address)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c, _, _ := newTestCPU(DefaultQuirks())
	assert.NoError(t, loadProgram(c, 0x2300))
	_, err := c.Step()
	assert.NoError(t, err)

	snapshot := c.Snapshot()
	_, err = c.execute(Decode(0x00EE))
	assert.NoError(t, err)
	assert.Empty(t, c.Stack)

	assert.Equal(t, []uint16{DefaultOrigin + 2}, snapshot.Stack)
	assert.Equal(t, uint16(0x300), snapshot.PC)
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "redraw", RedrawRequested.String())
	assert.Equal(t, "wait-for-keypress", WaitForKeypress.String())
	assert.Equal(t, "unknown", Signal(99).String())
}

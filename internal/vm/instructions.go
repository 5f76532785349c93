package vm

import "fmt"

// skipIf skips the next instruction if condition is true.
func (c *CPU) skipIf(condition bool) (Signal, error) {
	if condition {
		c.PC += 2
	}
	return Continue, nil
}

// setWithFlag stores the result in Vx and then the flag in VF, so that
// the flag wins if x is F.
func (c *CPU) setWithFlag(x uint8, result byte, flag bool) (Signal, error) {
	c.V[x] = result
	c.setFlag(flag)
	return Continue, nil
}

// setFlagFirst stores the flag in VF and then the result in Vx, so that
// the result wins if x is F.
func (c *CPU) setFlagFirst(x uint8, result byte, flag bool) (Signal, error) {
	c.setFlag(flag)
	c.V[x] = result
	return Continue, nil
}

func (c *CPU) setFlag(flag bool) {
	if flag {
		c.V[FlagRegister] = 1
	} else {
		c.V[FlagRegister] = 0
	}
}

// 00E0 - CLS
func (c *CPU) cls() (Signal, error) {
	c.display.Clear()
	return RedrawRequested, nil
}

// 00EE - RET
func (c *CPU) ret() (Signal, error) {
	depth := len(c.Stack)
	if depth == 0 {
		return Continue, fmt.Errorf("%w: return at address %03X", ErrStackUnderflow, c.PC-2)
	}
	c.PC = c.Stack[depth-1]
	c.Stack = c.Stack[:depth-1]
	return Continue, nil
}

// 1nnn - JP addr
func (c *CPU) jp(f Fields) (Signal, error) {
	c.PC = f.NNN
	return Continue, nil
}

// 2nnn - CALL addr
func (c *CPU) call(f Fields) (Signal, error) {
	if len(c.Stack) >= StackDepth {
		return Continue, fmt.Errorf("%w: call at address %03X exceeds depth %d",
			ErrStackOverflow, c.PC-2, StackDepth)
	}
	c.Stack = append(c.Stack, c.PC)
	c.PC = f.NNN
	return Continue, nil
}

// 3xnn - SE Vx, byte
func (c *CPU) seByte(f Fields) (Signal, error) {
	return c.skipIf(c.V[f.X] == f.NN)
}

// 4xnn - SNE Vx, byte
func (c *CPU) sneByte(f Fields) (Signal, error) {
	return c.skipIf(c.V[f.X] != f.NN)
}

// 5xy0 - SE Vx, Vy
func (c *CPU) seRegister(f Fields) (Signal, error) {
	return c.skipIf(c.V[f.X] == c.V[f.Y])
}

// 6xnn - LD Vx, byte
func (c *CPU) ldByte(f Fields) (Signal, error) {
	c.V[f.X] = f.NN
	return Continue, nil
}

// 7xnn - ADD Vx, byte, the carry flag is not affected.
func (c *CPU) addByte(f Fields) (Signal, error) {
	c.V[f.X] += f.NN
	return Continue, nil
}

// 8xy0 - LD Vx, Vy
func (c *CPU) ldRegister(f Fields) (Signal, error) {
	c.V[f.X] = c.V[f.Y]
	return Continue, nil
}

// 8xy1 - OR Vx, Vy
func (c *CPU) or(f Fields) (Signal, error) {
	c.V[f.X] |= c.V[f.Y]
	return Continue, nil
}

// 8xy2 - AND Vx, Vy
func (c *CPU) and(f Fields) (Signal, error) {
	c.V[f.X] &= c.V[f.Y]
	return Continue, nil
}

// 8xy3 - XOR Vx, Vy
func (c *CPU) xor(f Fields) (Signal, error) {
	c.V[f.X] ^= c.V[f.Y]
	return Continue, nil
}

// 8xy4 - ADD Vx, Vy, VF is set on carry.
func (c *CPU) addRegister(f Fields) (Signal, error) {
	sum := uint16(c.V[f.X]) + uint16(c.V[f.Y])
	return c.setWithFlag(f.X, byte(sum), sum > 0xFF)
}

// 8xy5 - SUB Vx, Vy, VF is set if there is no borrow.
func (c *CPU) sub(f Fields) (Signal, error) {
	vx, vy := c.V[f.X], c.V[f.Y]
	return c.setWithFlag(f.X, vx-vy, vy <= vx)
}

// 8xy6 - SHR Vx {, Vy}, VF receives the bit shifted out.
func (c *CPU) shr(f Fields) (Signal, error) {
	source := c.shiftSource(f)
	return c.setFlagFirst(f.X, source>>1, source&0x01 != 0)
}

// 8xy7 - SUBN Vx, Vy, VF is set if there is no borrow.
func (c *CPU) subn(f Fields) (Signal, error) {
	vx, vy := c.V[f.X], c.V[f.Y]
	return c.setWithFlag(f.X, vy-vx, vx <= vy)
}

// 8xyE - SHL Vx {, Vy}, VF receives the bit shifted out.
func (c *CPU) shl(f Fields) (Signal, error) {
	source := c.shiftSource(f)
	return c.setFlagFirst(f.X, source<<1, source&0x80 != 0)
}

func (c *CPU) shiftSource(f Fields) byte {
	if c.quirks.ShiftUsesVx {
		return c.V[f.X]
	}
	return c.V[f.Y]
}

// 9xy0 - SNE Vx, Vy
func (c *CPU) sneRegister(f Fields) (Signal, error) {
	return c.skipIf(c.V[f.X] != c.V[f.Y])
}

// Annn - LD I, addr
func (c *CPU) ldIndex(f Fields) (Signal, error) {
	c.I = f.NNN
	return Continue, nil
}

// Bnnn - JP V0, addr
func (c *CPU) jpOffset(f Fields) (Signal, error) {
	c.PC = f.NNN + uint16(c.V[0])
	return Continue, nil
}

// Cxnn - RND Vx, byte
func (c *CPU) rnd(f Fields) (Signal, error) {
	c.V[f.X] = c.random() & f.NN
	return Continue, nil
}

// Dxyn - DRW Vx, Vy, nibble
// The redraw is requested even if no pixel changed.
func (c *CPU) drw(f Fields) (Signal, error) {
	rows, err := c.readMemory(c.I, int(f.N))
	if err != nil {
		return Continue, fmt.Errorf("reading sprite: %w", err)
	}

	collision := c.display.DrawSprite(c.V[f.X], c.V[f.Y], rows)
	c.setFlag(collision)
	return RedrawRequested, nil
}

// Ex9E - SKP Vx
func (c *CPU) skp(f Fields) (Signal, error) {
	return c.skipIf(c.keys.IsPressed(c.V[f.X]))
}

// ExA1 - SKNP Vx
func (c *CPU) sknp(f Fields) (Signal, error) {
	return c.skipIf(!c.keys.IsPressed(c.V[f.X]))
}

// Fx07 - LD Vx, DT
func (c *CPU) ldFromDelay(f Fields) (Signal, error) {
	c.V[f.X] = c.DelayTimer
	return Continue, nil
}

// Fx0A - LD Vx, K
// The program counter already points past this instruction, execution
// resumes there once ResolveKey is called.
func (c *CPU) ldKey(f Fields) (Signal, error) {
	c.WaitingForKey = true
	c.KeyRegister = f.X
	return WaitForKeypress, nil
}

// Fx15 - LD DT, Vx
func (c *CPU) ldDelay(f Fields) (Signal, error) {
	c.DelayTimer = c.V[f.X]
	return Continue, nil
}

// Fx18 - LD ST, Vx
func (c *CPU) ldSound(f Fields) (Signal, error) {
	c.SoundTimer = c.V[f.X]
	return Continue, nil
}

// Fx1E - ADD I, Vx, wrapping within the 12-bit address space.
func (c *CPU) addIndex(f Fields) (Signal, error) {
	c.I = (c.I + uint16(c.V[f.X])) & AddressMask
	return Continue, nil
}

// Fx29 - LD F, Vx
func (c *CPU) ldGlyph(f Fields) (Signal, error) {
	c.I = GlyphAddress(c.V[f.X])
	return Continue, nil
}

// Fx33 - LD B, Vx
func (c *CPU) ldBCD(f Fields) (Signal, error) {
	vx := c.V[f.X]
	if err := c.writeMemory(c.I, vx/100, (vx/10)%10, vx%10); err != nil {
		return Continue, fmt.Errorf("storing BCD: %w", err)
	}
	return Continue, nil
}

// Fx55 - LD [I], Vx
func (c *CPU) store(f Fields) (Signal, error) {
	count := int(f.X) + 1
	if err := c.writeMemory(c.I, c.V[:count]...); err != nil {
		return Continue, fmt.Errorf("storing registers: %w", err)
	}
	c.advanceIndex(count)
	return Continue, nil
}

// Fx65 - LD Vx, [I]
func (c *CPU) load(f Fields) (Signal, error) {
	count := int(f.X) + 1
	data, err := c.readMemory(c.I, count)
	if err != nil {
		return Continue, fmt.Errorf("loading registers: %w", err)
	}
	copy(c.V[:count], data)
	c.advanceIndex(count)
	return Continue, nil
}

func (c *CPU) advanceIndex(count int) {
	if c.quirks.LoadStoreIncrementsIndex {
		c.I += uint16(count)
	}
}

package vm

// execute dispatches a decoded instruction to its behaviour. The top nibble
// selects the opcode family, the families 0x0, 0xE and 0xF are further
// selected by the low byte and 0x8 by the low nibble.
func (c *CPU) execute(f Fields) (Signal, error) {
	switch f.Family() {
	case 0x0:
		switch f.NN {
		case 0xE0:
			return c.cls()
		case 0xEE:
			return c.ret()
		}
	case 0x1:
		return c.jp(f)
	case 0x2:
		return c.call(f)
	case 0x3:
		return c.seByte(f)
	case 0x4:
		return c.sneByte(f)
	case 0x5:
		if f.N == 0 {
			return c.seRegister(f)
		}
	case 0x6:
		return c.ldByte(f)
	case 0x7:
		return c.addByte(f)
	case 0x8:
		return c.executeALU(f)
	case 0x9:
		if f.N == 0 {
			return c.sneRegister(f)
		}
	case 0xA:
		return c.ldIndex(f)
	case 0xB:
		return c.jpOffset(f)
	case 0xC:
		return c.rnd(f)
	case 0xD:
		return c.drw(f)
	case 0xE:
		switch f.NN {
		case 0x9E:
			return c.skp(f)
		case 0xA1:
			return c.sknp(f)
		}
	case 0xF:
		return c.executeMisc(f)
	}

	return Continue, c.unknown(f)
}

// executeALU dispatches the 8xyn register arithmetic family.
func (c *CPU) executeALU(f Fields) (Signal, error) {
	switch f.N {
	case 0x0:
		return c.ldRegister(f)
	case 0x1:
		return c.or(f)
	case 0x2:
		return c.and(f)
	case 0x3:
		return c.xor(f)
	case 0x4:
		return c.addRegister(f)
	case 0x5:
		return c.sub(f)
	case 0x6:
		return c.shr(f)
	case 0x7:
		return c.subn(f)
	case 0xE:
		return c.shl(f)
	}
	return Continue, c.unknown(f)
}

// executeMisc dispatches the Fxnn timer, keypad and memory family.
func (c *CPU) executeMisc(f Fields) (Signal, error) {
	switch f.NN {
	case 0x07:
		return c.ldFromDelay(f)
	case 0x0A:
		return c.ldKey(f)
	case 0x15:
		return c.ldDelay(f)
	case 0x18:
		return c.ldSound(f)
	case 0x1E:
		return c.addIndex(f)
	case 0x29:
		return c.ldGlyph(f)
	case 0x33:
		return c.ldBCD(f)
	case 0x55:
		return c.store(f)
	case 0x65:
		return c.load(f)
	}
	return Continue, c.unknown(f)
}

func (c *CPU) unknown(f Fields) error {
	return &UnknownInstructionError{
		Word:    f.Word,
		Address: c.PC - 2,
	}
}

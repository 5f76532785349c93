package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembler notation of an instruction word.
// Words that are not valid instructions are formatted as data.
func Format(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return FormatData(word)
	}

	name := op.Instruction().Name()
	if params := formatParams(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// FormatData returns the data directive for a word.
func FormatData(word uint16) string {
	return fmt.Sprintf(".word $%04X", word)
}

// Target returns the absolute address that a jump, call or LD I, addr
// instruction references. Bnnn is excluded as its target depends on V0.
func Target(word uint16) (uint16, bool) {
	switch word & 0xF000 {
	case 0x1000, 0x2000, 0xA000:
		return word & 0x0FFF, true
	default:
		return 0, false
	}
}

// formatParams formats the parameters of an instruction.
func formatParams(name string, word uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJump(word)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompare(word)
	case chip8.LdName:
		return formatLoad(word)
	case chip8.AddName:
		return formatAdd(word)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName,
		chip8.ShrName, chip8.ShlName:
		return fmt.Sprintf("V%X, V%X", registerX(word), registerY(word))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(word), word&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(word), registerY(word), word&0x000F)
	case chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", registerX(word))
	}
	return ""
}

// formatJump formats JP addr and JP V0, addr.
func formatJump(word uint16) string {
	if word&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", word&0x0FFF)
	}
	return fmt.Sprintf("$%03X", word&0x0FFF)
}

// formatCompare formats SE and SNE with a byte or register operand.
func formatCompare(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	}
	return ""
}

// formatLoad formats the LD variants, the Fxnn forms name their special
// operand (DT, ST, K, F, B or [I]).
func formatLoad(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xF000:
		switch word & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

// formatAdd formats ADD Vx, byte, ADD Vx, Vy and ADD I, Vx.
func formatAdd(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// registerX extracts the X register nibble from a word.
func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from a word.
func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}

package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Opcode is a matched opcode table entry.
type Opcode struct {
	op chip8.Opcode
}

// Instruction returns the instruction associated with this opcode.
func (o Opcode) Instruction() Instruction {
	return Instruction{ins: o.op.Instruction}
}

package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the opcode that matches the instruction word.
func Lookup(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			if op.Instruction == nil {
				break
			}
			return Opcode{op: op}, true
		}
	}
	return Opcode{}, false
}

// Word assembles the big-endian instruction word from its two bytes.
func Word(data []byte) (uint16, bool) {
	if len(data) < opcodeSize {
		return 0, false
	}
	return uint16(data[0])<<8 | uint16(data[1]), true
}

// Package chip8 provides CHIP-8 instruction mnemonics for tracing and
// disassembly.
//
// # Opcode Lookup
//
// Instruction words are matched against the CHIP-8 opcode tables of
// retrogolib. The table for the first nibble of the word is scanned for the
// first entry whose mask and value match:
//
//	word := uint16(b1)<<8 | uint16(b2)
//	op, ok := chip8.Lookup(word)
//
// # Formatting
//
// Format renders a word in the usual assembler notation, for example
//
//	ld V1, $20
//	drw V0, V1, $5
//	jp $200
//
// Words that do not decode to an instruction are rendered as data
// directives so that listings can be reassembled.
//
// # Control Flow
//
// Instruction exposes the control flow class of an instruction. The listing
// labels call, jump, skip and data targets and separates code blocks after
// returns and jumps.
package chip8

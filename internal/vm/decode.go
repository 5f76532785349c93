package vm

// Fields contains the operands of a decoded instruction word.
//
// The naming follows the usual ?nnn, ?xnn and ?xyn instruction forms:
//
//	nnn: the lowest 12 bits of the word
//	nn:  the lowest 8 bits of the word
//	n:   the lowest 4 bits of the word
//	x:   the lower 4 bits of the high byte
//	y:   the upper 4 bits of the low byte
type Fields struct {
	Word uint16
	X    uint8
	Y    uint8
	N    uint8
	NN   uint8
	NNN  uint16
}

// Decode extracts the instruction fields from a raw instruction word.
func Decode(word uint16) Fields {
	return Fields{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
}

// Family returns the top nibble of the word that selects the opcode family.
func (f Fields) Family() uint8 {
	return uint8(f.Word >> 12)
}

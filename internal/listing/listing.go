// Package listing writes CHIP-8 programs as assembly listings.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Options of the listing.
type Options struct {
	HexComments bool // add address and instruction word as comment
	ZeroBytes   bool // include trailing zero bytes
}

// Offset is a single instruction or data word of the program.
type Offset struct {
	Address uint16
	Label   string
	Code    string
	Comment string
	Data    []byte

	EndsBlock bool // execution does not fall through to the next offset
}

// Program is a disassembled program.
type Program struct {
	Origin  uint16
	Offsets []Offset

	options Options
}

// Disassemble decodes the program linearly word by word. Addresses within
// the program that are referenced by jumps, calls and index loads are
// labeled and the references use the label names. Instructions that a skip
// can land on are labeled as well.
func Disassemble(data []byte, origin uint16, options Options) *Program {
	p := &Program{
		Origin:  origin,
		options: options,
	}

	labels := collectLabels(data, origin)

	for offset := 0; offset < len(data); offset += 2 {
		address := origin + uint16(offset)
		o := Offset{
			Address: address,
			Label:   labels[address],
		}

		word, ok := chip8.Word(data[offset:])
		op, valid := chip8.Lookup(word)
		if !ok || !valid {
			end := min(offset+2, len(data))
			o.Data = data[offset:end]
		} else {
			ins := op.Instruction()
			o.EndsBlock = ins.IsReturn() || ins.IsJump()
			o.Code = chip8.Format(word)
			if target, ok := chip8.Target(word); ok {
				if name, ok := labels[target]; ok {
					o.Code = strings.Replace(o.Code, fmt.Sprintf("$%03X", target), name, 1)
				}
			}
		}

		if options.HexComments {
			o.Comment = fmt.Sprintf("$%03X %s", address, hexBytes(o.Data, word, ok && o.Code != ""))
		}
		p.Offsets = append(p.Offsets, o)
	}

	return p
}

// collectLabels returns the label names for all referenced addresses that
// are part of the program.
func collectLabels(data []byte, origin uint16) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	refs := set.New[uint16]()
	skips := set.New[uint16]()
	end := int(origin) + len(data)
	inside := func(address int) bool {
		return address >= int(origin) && address < end
	}

	for offset := 0; offset+1 < len(data); offset += 2 {
		word, _ := chip8.Word(data[offset:])
		op, ok := chip8.Lookup(word)
		if !ok {
			continue
		}
		ins := op.Instruction()

		if ins.IsSkip() {
			if target := int(origin) + offset + 4; inside(target) {
				skips.Add(uint16(target))
			}
			continue
		}

		target, ok := chip8.Target(word)
		if !ok || !inside(int(target)) {
			continue
		}
		switch {
		case ins.IsCall():
			calls.Add(target)
		case ins.IsJump():
			jumps.Add(target)
		case ins.IsDataReference(word):
			refs.Add(target)
		}
	}

	labels := make(map[uint16]string)
	for address := range skips {
		labels[address] = fmt.Sprintf("skip_%03X", address)
	}
	for address := range refs {
		labels[address] = fmt.Sprintf("data_%03X", address)
	}
	for address := range jumps {
		labels[address] = fmt.Sprintf("jmp_%03X", address)
	}
	for address := range calls {
		labels[address] = fmt.Sprintf("sub_%03X", address)
	}
	return labels
}

func hexBytes(data []byte, word uint16, code bool) string {
	if code {
		return fmt.Sprintf("%04X", word)
	}
	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// Write writes the program as assembly listing.
func (p *Program) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 program disassembly\n\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", p.Origin); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	endIndex := p.endIndex()
	for i := range endIndex {
		offset := p.Offsets[i]

		if offset.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", offset.Label); err != nil {
				return fmt.Errorf("writing label %s: %w", offset.Label, err)
			}
		}

		if err := writeOffset(w, offset); err != nil {
			return fmt.Errorf("writing offset $%03X: %w", offset.Address, err)
		}

		if offset.EndsBlock && i < endIndex-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing block separator: %w", err)
			}
		}
	}
	return nil
}

// writeOffset writes either code or data for an offset.
func writeOffset(w io.Writer, offset Offset) error {
	var line string
	if offset.Code != "" {
		line = "    " + offset.Code
	} else {
		var buf strings.Builder
		fmt.Fprintf(&buf, "    .byte $%02X", offset.Data[0])
		for _, b := range offset.Data[1:] {
			fmt.Fprintf(&buf, ", $%02X", b)
		}
		line = buf.String()
	}

	var err error
	if offset.Comment == "" {
		_, err = fmt.Fprintf(w, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w, "%-32s ; %s\n", line, offset.Comment)
	}
	return err
}

// endIndex returns the index after the last offset to output, trailing
// zero data is skipped unless requested.
func (p *Program) endIndex() int {
	if p.options.ZeroBytes {
		return len(p.Offsets)
	}

	for i := len(p.Offsets) - 1; i >= 0; i-- {
		offset := p.Offsets[i]
		if offset.Label != "" || offset.Code != "" {
			return i + 1
		}
		for _, b := range offset.Data {
			if b != 0 {
				return i + 1
			}
		}
	}
	return 0
}

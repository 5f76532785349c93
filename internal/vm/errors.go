package vm

import (
	"errors"
	"fmt"
)

// Errors returned by the interpreter. All of them are fatal for the current
// run, the program is malformed.
var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrAddressOutOfRange  = errors.New("address out of range")
	ErrProtectedWrite     = errors.New("write to protected font memory")
	ErrInvalidOrigin      = errors.New("invalid origin address")
	ErrProgramTooLarge    = errors.New("program too large")
)

// UnknownInstructionError is returned when no behaviour exists for a word.
type UnknownInstructionError struct {
	Word    uint16
	Address uint16 // address the word was fetched from
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %04X at address %03X", e.Word, e.Address)
}

func (e *UnknownInstructionError) Unwrap() error {
	return ErrUnknownInstruction
}

// AddressError is returned for memory accesses that are outside of the
// address space or that would overwrite the font.
type AddressError struct {
	Address int
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: $%04X", e.Err, e.Address)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

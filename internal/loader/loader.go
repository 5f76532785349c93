// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program is empty")

// ROM is a loaded program image.
type ROM struct {
	Name     string
	Data     []byte
	Checksum uint32 // CRC32 of the data
}

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program file and checks that it fits into memory at the
// configured origin.
func (l *Loader) Load(opts options.Program) (*ROM, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	// one byte more than fits to detect oversized files without reading
	// arbitrary large inputs
	data, err := io.ReadAll(io.LimitReader(file, vm.MemorySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	return LoadFromBytes(opts.Input, data, opts.LoadAddress)
}

// LoadFromBytes validates an in-memory program image for the given origin.
func LoadFromBytes(name string, data []byte, origin uint16) (*ROM, error) {
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	if int(origin) < vm.FontEnd || int(origin) >= vm.MemorySize {
		return nil, fmt.Errorf("%w: $%04X", vm.ErrInvalidOrigin, origin)
	}
	if available := vm.MemorySize - int(origin); len(data) > available {
		return nil, fmt.Errorf("%w: %d bytes, %d available at $%03X",
			vm.ErrProgramTooLarge, len(data), available, origin)
	}

	return &ROM{
		Name:     name,
		Data:     data,
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

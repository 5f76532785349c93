// Package main implements a static CHIP-8 program disassembler
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/retroenv/retrochip8/internal/listing"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string
	origin string

	noHexComments bool
	zeroBytes     bool
	quiet         bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := disasmFile(options); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.StringVar(&options.origin, "origin", fmt.Sprintf("0x%03X", vm.DefaultOrigin), "load address of the program")
	flags.BoolVar(&options.noHexComments, "nohexcomments", false, "do not output instruction words as hex values")
	flags.BoolVar(&options.zeroBytes, "z", false, "output the trailing zero bytes of the program")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8dis [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner() {
	fmt.Println("[------------------------------------]")
	fmt.Println("[ chip8dis - CHIP-8 disassembler     ]")
	fmt.Printf("[------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(options optionFlags) (err error) {
	origin, err := strconv.ParseUint(options.origin, 0, 16)
	if err != nil {
		return fmt.Errorf("parsing origin '%s': %w", options.origin, err)
	}

	data, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if int(origin)+len(data) > vm.MemorySize {
		return fmt.Errorf("%w: %d bytes at $%03X", vm.ErrProgramTooLarge, len(data), origin)
	}

	var w io.Writer = os.Stdout
	if options.output != "" {
		file, err := os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("closing file: %w", closeErr))
			}
		}()
		w = file
	}

	program := listing.Disassemble(data, uint16(origin), listing.Options{
		HexComments: !options.noHexComments,
		ZeroBytes:   options.zeroBytes,
	})
	if err := program.Write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/vm"
)

// DefaultScale is the default display scale factor.
const DefaultScale = 8

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:], flag.ExitOnError)
}

func parseArgs(name string, arguments []string, handling flag.ErrorHandling) (options.Program, error) {
	flags := flag.NewFlagSet(name, handling)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	if opts.Snapshot && opts.Output == "" {
		opts.Output = fileprocessor.SnapshotFilename(opts.Input)
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend != options.FrontendAuto && !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.InstructionsPerFrame < 1 {
		return fmt.Errorf("invalid instructions per frame %d: must be at least 1", opts.InstructionsPerFrame)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d: must be at least 1", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d: must not be negative", opts.Frames)
	}

	address, err := parseOrigin(opts.Origin)
	if err != nil {
		return err
	}
	opts.LoadAddress = address
	return nil
}

// parseOrigin parses an address with optional base prefix like 0x200.
func parseOrigin(s string) (uint16, error) {
	value, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid origin '%s': %w", s, err)
	}
	address := uint16(value)
	if int(address) < vm.FontEnd || int(address) >= vm.MemorySize {
		return 0, fmt.Errorf("invalid origin '%s': %w", s, vm.ErrInvalidOrigin)
	}
	return address, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the PNG file to write a snapshot of the final display to")
	flags.BoolVar(&opts.Snapshot, "snapshot", false, "write the snapshot to the program file name with .png extension if -o is not set")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendAuto, "frontend to use (window/terminal/headless), auto-detected if not set")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", machine.DefaultInstructionsPerFrame, "number of instructions executed per 60 Hz frame")
	flags.StringVar(&opts.Origin, "origin", fmt.Sprintf("0x%03X", vm.DefaultOrigin), "program load and entry address")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.Scale, "scale", DefaultScale, "scale factor of the window and the snapshot")
	flags.StringVar(&opts.Foreground, "fg", screen.DefaultForeground, "colour of lit pixels")
	flags.StringVar(&opts.Background, "bg", screen.DefaultBackground, "colour of unlit pixels")

	flags.BoolVar(&opts.ShiftUsesVx, "shift-vx", false, "8xy6/8xyE shift Vx in place instead of Vy")
	flags.BoolVar(&opts.NoIndexIncrement, "no-index-increment", false, "Fx55/Fx65 leave the index register unchanged")
	flags.BoolVar(&opts.TimersWhileWaiting, "timers-while-waiting", false, "timers keep counting down while waiting for a keypress")
}

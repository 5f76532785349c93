// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachineConfig translates the program options into the machine and
// interpreter core configuration.
func CreateMachineConfig(opts options.Program) machine.Config {
	cfg := machine.DefaultConfig()
	cfg.InstructionsPerFrame = opts.InstructionsPerFrame
	cfg.Trace = opts.Trace

	cfg.CPU.Origin = opts.LoadAddress
	cfg.CPU.Quirks = CreateQuirks(opts.Quirks)
	return cfg
}

// CreateQuirks translates the quirk options into interpreter core quirks.
func CreateQuirks(opts options.Quirks) vm.Quirks {
	quirks := vm.DefaultQuirks()
	quirks.ShiftUsesVx = opts.ShiftUsesVx
	quirks.LoadStoreIncrementsIndex = !opts.NoIndexIncrement
	quirks.TimersRunWhileWaiting = opts.TimersWhileWaiting
	return quirks
}

// CreatePalette parses the display colour options.
func CreatePalette(opts options.Display) (screen.Palette, error) {
	palette, err := screen.ParsePalette(opts.Foreground, opts.Background)
	if err != nil {
		return screen.Palette{}, fmt.Errorf("parsing palette: %w", err)
	}
	return palette, nil
}

// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

// FrontendFactory creates the frontend with the given name.
type FrontendFactory func(name string, opts options.Program, palette screen.Palette) (frontend.Frontend, error)

// Speaker is a host audio tone that has to be closed after use.
type Speaker interface {
	sound.Tone
	Close() error
}

// SpeakerFactory opens the host audio output.
type SpeakerFactory func() (Speaker, error)

// Pipeline orchestrates the complete interpreter workflow.
type Pipeline struct {
	logger      *log.Logger
	detector    *detector.Detector
	loader      *loader.Loader
	newFrontend FrontendFactory
	newSpeaker  SpeakerFactory
}

// New creates a new interpreter pipeline. newSpeaker is optional, without
// it the sound output is silent.
func New(logger *log.Logger, env detector.Environment, newFrontend FrontendFactory, newSpeaker SpeakerFactory) *Pipeline {
	return &Pipeline{
		logger:      logger,
		detector:    detector.New(logger, env),
		loader:      loader.New(),
		newFrontend: newFrontend,
		newSpeaker:  newSpeaker,
	}
}

// Result contains the final state of a program run.
type Result struct {
	Frontend string
	Frames   uint64
	Display  *screen.Bitmap
}

// Execute loads the program, runs it in the selected frontend until it
// ends and writes the display snapshot if requested.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	frontendName := p.detector.Detect(opts)

	rom, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	palette, err := config.CreatePalette(opts.Display)
	if err != nil {
		return nil, err
	}

	fe, err := p.newFrontend(frontendName, opts, palette)
	if err != nil {
		return nil, fmt.Errorf("creating %s frontend: %w", frontendName, err)
	}

	snd, closeSound := p.openSound(opts)
	defer closeSound()

	m, err := machine.New(p.logger, config.CreateMachineConfig(opts), fe, snd)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}
	if err := m.Load(rom.Data); err != nil {
		return nil, err
	}

	p.printInfo(opts, rom, frontendName)

	runErr := fe.Run(ctx, m)
	result := &Result{
		Frontend: frontendName,
		Frames:   m.Frames(),
		Display:  m.Bitmap(),
	}
	if runErr != nil {
		p.logState(m)
	}

	if opts.Output != "" {
		if err := fileprocessor.WriteSnapshot(opts.Output, m.Bitmap(), palette, opts.Scale); err != nil {
			if runErr == nil {
				return result, err
			}
			p.logger.Error("Writing snapshot failed", log.Err(err))
		} else {
			p.logger.Debug("Snapshot written", log.String("file", opts.Output))
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("running program: %w", runErr)
	}
	return result, nil
}

// openSound returns the sound output and a function that releases it.
func (p *Pipeline) openSound(opts options.Program) (sound.Sound, func()) {
	if opts.Mute || p.newSpeaker == nil {
		return sound.NewLevel(sound.Silent{}), func() {}
	}

	speaker, err := p.newSpeaker()
	if err != nil {
		p.logger.Warn("Sound output not available", log.Err(err))
		return sound.NewLevel(sound.Silent{}), func() {}
	}

	return sound.NewLevel(speaker), func() {
		speaker.SetPlaying(false)
		if err := speaker.Close(); err != nil {
			p.logger.Error("Closing sound output failed", log.Err(err))
		}
	}
}

// printInfo prints the information about the loaded program.
func (p *Pipeline) printInfo(opts options.Program, rom *loader.ROM, frontendName string) {
	if opts.Quiet {
		return
	}
	p.logger.Info("Running CHIP-8 program",
		log.String("file", rom.Name),
		log.Int("size", len(rom.Data)),
		log.Hex("crc32", rom.Checksum),
		log.String("frontend", frontendName))
}

// logState logs the interpreter registers after the program stopped.
func (p *Pipeline) logState(m *machine.Machine) {
	state := m.CPU().Snapshot()
	p.logger.Debug("Interpreter state",
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Int("stack_depth", len(state.Stack)),
		log.Uint8("dt", state.DelayTimer),
		log.Uint8("st", state.SoundTimer),
		log.Int("frames", int(m.Frames())))
}

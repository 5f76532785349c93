// Package main implements the entry point of the CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/sound/speaker"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	env := detector.Environment{
		WindowAvailable: window.Available,
		Terminal:        term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
	p := pipeline.New(logger, env, newFrontend(logger), openSpeaker)

	result, err := p.Execute(ctx, opts)
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Program execution failed", log.Err(err))
		os.Exit(1)
	}

	logger.Debug("Program finished",
		log.String("frontend", result.Frontend),
		log.Int("frames", int(result.Frames)))
}

// newFrontend returns a factory for all frontends of the build.
func newFrontend(logger *log.Logger) pipeline.FrontendFactory {
	return func(name string, opts options.Program, palette screen.Palette) (frontend.Frontend, error) {
		switch name {
		case options.FrontendWindow:
			return window.New(logger, palette, opts.Scale, opts.Frames), nil
		case options.FrontendTerminal:
			return frontend.NewTerminal(logger, os.Stdin, os.Stdout, opts.Frames), nil
		case options.FrontendHeadless:
			return frontend.NewHeadless(opts.Frames, false), nil
		default:
			return nil, fmt.Errorf("unsupported frontend '%s'", name)
		}
	}
}

func openSpeaker() (pipeline.Speaker, error) {
	s, err := speaker.New()
	if err != nil {
		return nil, fmt.Errorf("opening speaker: %w", err)
	}
	return s, nil
}

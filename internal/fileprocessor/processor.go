// Package fileprocessor handles banner output and display snapshot files
package fileprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information and the emulated
// system settings
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if opts.InstructionsPerFrame > 0 {
		logger.Info("Emulating",
			log.String("system", string(arch.CHIP8)),
			log.Int("instructions_per_second", opts.InstructionsPerFrame*machine.FrameRate),
			log.Int("scale", opts.Scale))
	}
}

// SnapshotFilename returns the snapshot file name for a program file, the
// extension of the program file is replaced by .png.
func SnapshotFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return strings.TrimSuffix(inputFile, ext) + ".png"
}

// WriteSnapshot writes the display as scaled PNG image to the given file.
func WriteSnapshot(path string, bitmap *screen.Bitmap, palette screen.Palette, scale int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing snapshot file %s: %w", path, closeErr)
		}
	}()

	if err := bitmap.WritePNG(file, palette, scale); err != nil {
		return fmt.Errorf("writing snapshot file %s: %w", path, err)
	}
	return nil
}

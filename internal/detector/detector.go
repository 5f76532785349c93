// Package detector handles frontend selection and program file checks.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// extensions contains the file extensions commonly used for programs.
var extensions = set.New[string]()

func init() {
	for _, ext := range []string{".ch8", ".c8", ".rom", ".bin"} {
		extensions.Add(ext)
	}
}

// Environment describes the host capabilities relevant for the frontend
// selection.
type Environment struct {
	WindowAvailable bool // built with window support
	Terminal        bool // stdin and stdout are interactive terminals
}

// Detector handles frontend detection from options and host environment.
type Detector struct {
	logger *log.Logger
	env    Environment
}

// New creates a new frontend detector.
func New(logger *log.Logger, env Environment) *Detector {
	return &Detector{
		logger: logger,
		env:    env,
	}
}

// Detect determines the frontend to use. An explicitly specified frontend
// is returned unchanged, otherwise the window frontend is preferred, then
// the terminal and finally the headless frontend.
func (d *Detector) Detect(opts options.Program) string {
	d.checkExtension(opts.Input)

	if opts.Frontend != options.FrontendAuto {
		return opts.Frontend
	}

	var frontend string
	switch {
	case d.env.WindowAvailable:
		frontend = options.FrontendWindow
	case d.env.Terminal:
		frontend = options.FrontendTerminal
	default:
		frontend = options.FrontendHeadless
	}

	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("file", opts.Input))
	return frontend
}

// checkExtension warns about files that do not look like programs.
func (d *Detector) checkExtension(filename string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if extensions.Contains(ext) {
		return
	}
	d.logger.Warn("Unexpected program file extension, loading as raw program",
		log.String("file", filename))
}

//go:build headless

package window

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

// Available reports whether the window frontend is part of the build.
const Available = false

// ErrUnavailable is returned by Run in headless builds.
var ErrUnavailable = errors.New("window frontend not available in headless build")

// Window is not available in headless builds.
type Window struct{}

// New returns a window frontend that fails to run.
func New(*log.Logger, screen.Palette, int, int) *Window {
	return &Window{}
}

// Present does nothing.
func (w *Window) Present(*screen.Bitmap) error {
	return nil
}

// Run always fails in headless builds.
func (w *Window) Run(context.Context, *machine.Machine) error {
	return ErrUnavailable
}

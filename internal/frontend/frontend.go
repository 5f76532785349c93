// Package frontend implements the host frontends that pace the machine,
// forward host input to the keypad and show the display.
package frontend

import (
	"context"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/screen"
)

// Frontend shows the display of a machine and drives its frames.
type Frontend interface {
	machine.Presenter

	// Run executes frames until the context is cancelled, the user quits,
	// the frame limit is reached or the machine returns an error.
	Run(ctx context.Context, m *machine.Machine) error
}

// Headless runs a machine without any host output. The last presented
// display is kept for snapshots.
type Headless struct {
	frames   int
	realtime bool

	presents int
	last     *screen.Bitmap
}

// NewHeadless returns a headless frontend that runs the given number of
// frames. A limit of 0 runs until the context is cancelled. If realtime
// is set the frames are paced at 60 Hz, otherwise they run unthrottled.
func NewHeadless(frames int, realtime bool) *Headless {
	return &Headless{
		frames:   frames,
		realtime: realtime,
		last:     screen.New(),
	}
}

// Present stores a copy of the display.
func (h *Headless) Present(bitmap *screen.Bitmap) error {
	h.presents++
	h.last = bitmap.Copy()
	return nil
}

// Run executes the frames.
func (h *Headless) Run(ctx context.Context, m *machine.Machine) error {
	if !h.realtime && h.frames > 0 {
		return m.Run(ctx, nil, h.frames)
	}

	ticker := time.NewTicker(machine.FrameDuration)
	defer ticker.Stop()
	return m.Run(ctx, ticker.C, h.frames)
}

// Presents returns the number of presented frames.
func (h *Headless) Presents() int {
	return h.presents
}

// Last returns the last presented display.
func (h *Headless) Last() *screen.Bitmap {
	return h.last
}

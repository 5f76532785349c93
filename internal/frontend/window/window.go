//go:build !headless

package window

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

// Title is the window title.
const Title = "retrochip8"

// Available reports whether the window frontend is part of the build.
const Available = true

var qwertyKeys = []hostKey{
	{'1', int(ebiten.KeyDigit1)}, {'2', int(ebiten.KeyDigit2)}, {'3', int(ebiten.KeyDigit3)}, {'4', int(ebiten.KeyDigit4)},
	{'q', int(ebiten.KeyQ)}, {'w', int(ebiten.KeyW)}, {'e', int(ebiten.KeyE)}, {'r', int(ebiten.KeyR)},
	{'a', int(ebiten.KeyA)}, {'s', int(ebiten.KeyS)}, {'d', int(ebiten.KeyD)}, {'f', int(ebiten.KeyF)},
	{'z', int(ebiten.KeyZ)}, {'x', int(ebiten.KeyX)}, {'c', int(ebiten.KeyC)}, {'v', int(ebiten.KeyV)},
}

// Window shows the display in a desktop window scaled by an integer factor.
// Ebiten calls Update at 60 ticks per second, every tick runs one frame.
// Escape or closing the window quits.
type Window struct {
	logger   *log.Logger
	palette  screen.Palette
	scale    int
	frames   int
	bindings []binding

	ctx     context.Context
	machine *machine.Machine
	image   *ebiten.Image
	mutex   sync.RWMutex
	pixels  []byte
	ticks   int
}

// New returns a window frontend that runs the given number of frames,
// a limit of 0 runs until the window is closed.
func New(logger *log.Logger, palette screen.Palette, scale, frames int) *Window {
	if scale < 1 {
		scale = 1
	}
	w := &Window{
		logger:   logger,
		palette:  palette,
		scale:    scale,
		frames:   frames,
		bindings: keyBindings(keypad.QWERTY, qwertyKeys),
		pixels:   make([]byte, screen.Width*screen.Height*4),
	}
	screen.New().RGBA(w.pixels, palette)
	return w
}

// Present copies the display into the pixel buffer that is drawn by the
// next Draw call.
func (w *Window) Present(bitmap *screen.Bitmap) error {
	w.mutex.Lock()
	bitmap.RGBA(w.pixels, w.palette)
	w.mutex.Unlock()
	return nil
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(ctx context.Context, m *machine.Machine) error {
	w.ctx = ctx
	w.machine = m

	ebiten.SetWindowSize(screen.Width*w.scale, screen.Height*w.scale)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(machine.FrameRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if w.frames > 0 && w.ticks >= w.frames {
		return nil
	}
	return ctx.Err()
}

// Update forwards key edges to the machine and runs one frame.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.logger.Debug("Quit requested")
		return ebiten.Termination
	}
	if w.frames > 0 && w.ticks >= w.frames {
		return ebiten.Termination
	}

	for _, b := range w.bindings {
		hostKey := ebiten.Key(b.code)
		if inpututil.IsKeyJustPressed(hostKey) {
			w.machine.KeyDown(b.key)
		}
		if inpututil.IsKeyJustReleased(hostKey) {
			w.machine.KeyUp(b.key)
		}
	}

	w.ticks++
	return w.machine.Frame()
}

// Draw renders the last presented display.
func (w *Window) Draw(target *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(screen.Width, screen.Height)
	}

	w.mutex.RLock()
	w.image.WritePixels(w.pixels)
	w.mutex.RUnlock()
	target.DrawImage(w.image, nil)
}

// Layout returns the native display resolution, ebiten scales it to the
// window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return screen.Width, screen.Height
}

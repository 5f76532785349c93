package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultHoldFrames is the number of frames a key stays pressed after the
// terminal reported it.
const DefaultHoldFrames = 6

// ErrNotTerminal is returned if the terminal frontend is started without
// an interactive terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B

	escapeHome       = "\x1b[H"
	escapeClear      = "\x1b[2J"
	escapeHideCursor = "\x1b[?25l"
	escapeShowCursor = "\x1b[?25h"
)

// Terminal renders the display into an ANSI terminal and reads keys from
// the terminal in raw mode. Ctrl-C or Escape quits.
type Terminal struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer
	layout keypad.Layout
	held   *heldKeys
	frames int
}

// NewTerminal returns a terminal frontend that runs the given number of
// frames, a limit of 0 runs until the user quits.
func NewTerminal(logger *log.Logger, in *os.File, out io.Writer, frames int) *Terminal {
	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
		layout: keypad.QWERTY,
		held:   newHeldKeys(DefaultHoldFrames),
		frames: frames,
	}
}

// Present draws the display at the top left of the terminal.
func (t *Terminal) Present(bitmap *screen.Bitmap) error {
	if _, err := io.WriteString(t.out, escapeHome+Render(bitmap)); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Run switches the terminal to raw mode and executes frames at 60 Hz.
func (t *Terminal) Run(ctx context.Context, m *machine.Machine) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	if width, height, err := term.GetSize(fd); err == nil && (width < screen.Width || height < screen.Height/2) {
		t.logger.Warn("Terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height))
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.out, escapeShowCursor+"\r\n")
		_ = term.Restore(fd, state)
	}()

	if _, err := io.WriteString(t.out, escapeHideCursor+escapeClear); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}

	input := make(chan byte, 64)
	done := make(chan struct{})
	defer close(done)
	go readInput(t.in, input, done)

	ticker := time.NewTicker(machine.FrameDuration)
	defer ticker.Stop()

	for executed := 0; t.frames <= 0 || executed < t.frames; executed++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if quit := t.handleInput(m, input); quit {
			return nil
		}
		if err := m.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// handleInput forwards pending terminal input to the machine and releases
// keys whose hold time expired. It returns true if the user quits.
func (t *Terminal) handleInput(m *machine.Machine, input <-chan byte) bool {
	for _, key := range t.held.tick() {
		m.KeyUp(key)
	}

	for {
		select {
		case b, ok := <-input:
			if !ok || b == keyCtrlC || b == keyEscape {
				return true
			}
			key, ok := t.layout.Key(rune(b))
			if !ok {
				continue
			}
			if t.held.press(key) {
				m.KeyDown(key)
			}
		default:
			return false
		}
	}
}

// readInput sends every byte read from r to the channel until reading fails
// or done is closed. A pending read is not interrupted, the goroutine exits
// once it returns.
func readInput(r io.Reader, input chan<- byte, done <-chan struct{}) {
	defer close(input)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case input <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Package machine drives the interpreter core at a fixed frame rate and
// connects it to the display, keypad and sound collaborators.
package machine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the timer frequency in frames per second.
const FrameRate = 60

// FrameDuration is the duration of a single frame.
const FrameDuration = time.Second / FrameRate

// DefaultInstructionsPerFrame is the default instruction batch size.
const DefaultInstructionsPerFrame = 10

var errInvalidBatchSize = errors.New("instructions per frame must be positive")

// Presenter shows the display bitmap on the host.
type Presenter interface {
	Present(bitmap *screen.Bitmap) error
}

// Config contains the machine settings.
type Config struct {
	InstructionsPerFrame int
	Trace                bool // log every executed instruction
	CPU                  vm.Config
}

// DefaultConfig returns the default machine configuration.
func DefaultConfig() Config {
	return Config{
		InstructionsPerFrame: DefaultInstructionsPerFrame,
		CPU:                  vm.DefaultConfig(),
	}
}

// Machine owns the interpreter core and schedules instruction batches,
// timer ticks and input events per frame.
type Machine struct {
	logger    *log.Logger
	cfg       Config
	cpu       *vm.CPU
	bitmap    *screen.Bitmap
	keys      *keypad.Keypad
	sound     sound.Sound
	presenter Presenter

	mutex  sync.Mutex
	events []keypad.Event

	frames uint64
}

// New returns a new machine. The presenter is called at the end of every
// frame in which the program requested a redraw.
func New(logger *log.Logger, cfg Config, presenter Presenter, snd sound.Sound) (*Machine, error) {
	if cfg.InstructionsPerFrame <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidBatchSize, cfg.InstructionsPerFrame)
	}
	if snd == nil {
		snd = sound.NewLevel(sound.Silent{})
	}

	bitmap := screen.New()
	keys := keypad.New()

	return &Machine{
		logger:    logger,
		cfg:       cfg,
		cpu:       vm.New(bitmap, keys, cfg.CPU),
		bitmap:    bitmap,
		keys:      keys,
		sound:     snd,
		presenter: presenter,
	}, nil
}

// Load copies the program into memory.
func (m *Machine) Load(rom []byte) error {
	if err := m.cpu.Load(rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	m.logger.Debug("Program loaded",
		log.Int("size", len(rom)),
		log.Hex("origin", m.cpu.Origin()))
	return nil
}

// KeyDown queues a key press. It is safe to call from any goroutine,
// the event is applied at the start of the next frame.
func (m *Machine) KeyDown(key byte) {
	m.queue(keypad.Event{Key: key, Down: true})
}

// KeyUp queues a key release. It is safe to call from any goroutine,
// the event is applied at the start of the next frame.
func (m *Machine) KeyUp(key byte) {
	m.queue(keypad.Event{Key: key})
}

func (m *Machine) queue(event keypad.Event) {
	m.mutex.Lock()
	m.events = append(m.events, event)
	m.mutex.Unlock()
}

// Frame runs a single 60 Hz frame: queued input events are applied, the
// instruction batch is executed, the timers tick, the sound level is
// updated and the display is presented if a redraw was requested.
func (m *Machine) Frame() error {
	m.applyInput()

	redraw, err := m.runBatch()
	if err != nil {
		return err
	}

	m.cpu.TickTimers()
	m.sound.Update(m.cpu.SoundTimer)
	m.frames++

	if redraw && m.presenter != nil {
		if err := m.presenter.Present(m.bitmap); err != nil {
			return fmt.Errorf("presenting display: %w", err)
		}
	}
	return nil
}

// Run executes frames on every clock tick until the context is cancelled,
// limit frames were executed or a fatal error occurs. A nil clock runs the
// frames unthrottled, a limit of 0 runs without frame limit.
func (m *Machine) Run(ctx context.Context, clock <-chan time.Time, limit int) error {
	for executed := 0; limit <= 0 || executed < limit; executed++ {
		if clock == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock:
			}
		}

		if err := m.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// applyInput applies the queued key events in order. A key release of a
// key that was held down completes a pending keypress wait.
func (m *Machine) applyInput() {
	m.mutex.Lock()
	events := m.events
	m.events = nil
	m.mutex.Unlock()

	for _, event := range events {
		wasDown := m.keys.Apply(event)
		if event.Down || !wasDown {
			continue
		}
		if m.cpu.ResolveKey(event.Key) {
			m.logger.Debug("Keypress wait resolved", log.Hex("key", event.Key))
		}
	}
}

// runBatch executes up to the configured number of instructions and
// returns whether a redraw was requested. The batch ends early when the
// program waits for a keypress.
func (m *Machine) runBatch() (bool, error) {
	redraw := false

	for range m.cfg.InstructionsPerFrame {
		if m.cfg.Trace && !m.cpu.AwaitingKey() {
			m.trace()
		}

		signal, err := m.cpu.Step()
		if err != nil {
			return redraw, fmt.Errorf("executing instruction: %w", err)
		}

		switch signal {
		case vm.RedrawRequested:
			redraw = true
		case vm.WaitForKeypress:
			return redraw, nil
		}
	}
	return redraw, nil
}

func (m *Machine) trace() {
	word, err := m.cpu.Fetch()
	if err != nil {
		return
	}
	m.logger.Debug("Executing",
		log.Hex("address", m.cpu.PC),
		log.Hex("word", word),
		log.String("instruction", chip8.Format(word)))
}

// CPU returns the interpreter core.
func (m *Machine) CPU() *vm.CPU {
	return m.cpu
}

// Bitmap returns the display bitmap.
func (m *Machine) Bitmap() *screen.Bitmap {
	return m.bitmap
}

// Keypad returns the keypad state.
func (m *Machine) Keypad() *keypad.Keypad {
	return m.keys
}

// Frames returns the number of executed frames.
func (m *Machine) Frames() uint64 {
	return m.frames
}

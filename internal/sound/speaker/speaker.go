//go:build !headless

// Package speaker plays the sound timer tone on the host audio device.
package speaker

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.2

	bytesPerSample = 4 // mono float32
)

// Speaker is a square wave tone generator backed by an oto player.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player

	mutex   sync.Mutex
	playing atomic.Bool
	phase   int // samples generated, only accessed from Read
}

// New opens the host audio device.
func New() (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	s := &Speaker{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// SetPlaying switches the tone on or off.
func (s *Speaker) SetPlaying(playing bool) {
	s.playing.Store(playing)
}

// Read implements io.Reader and is called by the oto player to fetch
// samples. Silence is generated while the tone is off.
func (s *Speaker) Read(p []byte) (int, error) {
	playing := s.playing.Load()
	samples := len(p) / bytesPerSample
	period := SampleRate / Frequency

	for i := range samples {
		var value float32
		if playing {
			value = Volume
			if (s.phase/(period/2))%2 == 1 {
				value = -Volume
			}
			s.phase = (s.phase + 1) % period
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(value))
	}
	return samples * bytesPerSample, nil
}

// Close stops the playback.
func (s *Speaker) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

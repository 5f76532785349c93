// Package sound implements the level-triggered sound output that is driven
// by the sound timer.
package sound

// Sound consumes the sound timer value once per 60 Hz tick.
type Sound interface {
	Update(timer byte)
}

// Tone is an output device that plays a fixed tone while switched on.
type Tone interface {
	SetPlaying(playing bool)
}

// Level switches a tone on while the sound timer is nonzero and off when it
// reaches zero. Only level changes are forwarded to the tone.
type Level struct {
	tone    Tone
	playing bool
}

// NewLevel returns a level trigger for the tone.
func NewLevel(tone Tone) *Level {
	return &Level{tone: tone}
}

// Update switches the tone based on the current sound timer value.
func (l *Level) Update(timer byte) {
	playing := timer > 0
	if playing == l.playing {
		return
	}
	l.playing = playing
	l.tone.SetPlaying(playing)
}

// Playing returns whether the tone is currently switched on.
func (l *Level) Playing() bool {
	return l.playing
}

// Silent is a tone that produces no output.
type Silent struct{}

// SetPlaying does nothing.
func (Silent) SetPlaying(bool) {}

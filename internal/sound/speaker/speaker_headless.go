//go:build headless

// Package speaker plays the sound timer tone on the host audio device.
package speaker

import "errors"

// ErrUnavailable is returned by New in headless builds.
var ErrUnavailable = errors.New("audio output not available in headless build")

// Speaker is not available in headless builds.
type Speaker struct{}

// New always fails in headless builds.
func New() (*Speaker, error) {
	return nil, ErrUnavailable
}

// SetPlaying does nothing.
func (s *Speaker) SetPlaying(bool) {}

// Close does nothing.
func (s *Speaker) Close() error {
	return nil
}

package screen

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Default palette colours.
const (
	DefaultForeground = "#FFFFFF"
	DefaultBackground = "#000000"
)

// Palette maps the two pixel states to colours.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

// DefaultPalette returns a white on black palette.
func DefaultPalette() Palette {
	return Palette{
		On:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Off: color.RGBA{A: 0xFF},
	}
}

// ParsePalette creates a palette from hex colour strings like "#33FF66".
// Empty strings select the default colour.
func ParsePalette(foreground, background string) (Palette, error) {
	if foreground == "" {
		foreground = DefaultForeground
	}
	if background == "" {
		background = DefaultBackground
	}

	on, err := parseColor(foreground)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing foreground color: %w", err)
	}
	off, err := parseColor(background)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing background color: %w", err)
	}
	return Palette{On: on, Off: off}, nil
}

// Color returns the colour of a pixel state.
func (p Palette) Color(on bool) color.RGBA {
	if on {
		return p.On
	}
	return p.Off
}

func parseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

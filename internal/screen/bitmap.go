// Package screen provides the monochrome display bitmap that the interpreter
// draws to and helpers to render it for a host.
package screen

import (
	"bytes"

	"github.com/32bitkid/bitreader"
)

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// spriteWidth is the number of pixels encoded in one sprite row byte.
const spriteWidth = 8

// Bitmap is a Width x Height 1-bit display surface.
type Bitmap struct {
	pixels [Height][Width]bool
}

// New returns a bitmap with all pixels off.
func New() *Bitmap {
	return &Bitmap{}
}

// Clear turns all pixels off.
func (b *Bitmap) Clear() {
	b.pixels = [Height][Width]bool{}
}

// Pixel returns whether the pixel at x, y is on. Coordinates wrap.
func (b *Bitmap) Pixel(x, y int) bool {
	return b.pixels[wrap(y, Height)][wrap(x, Width)]
}

// SetPixel sets the pixel at x, y. Coordinates wrap.
func (b *Bitmap) SetPixel(x, y int, on bool) {
	b.pixels[wrap(y, Height)][wrap(x, Width)] = on
}

// Lit returns the number of pixels that are on.
func (b *Bitmap) Lit() int {
	count := 0
	for y := range Height {
		for x := range Width {
			if b.pixels[y][x] {
				count++
			}
		}
	}
	return count
}

// DrawSprite XORs the sprite onto the bitmap with its top left corner at
// x, y. Each row byte encodes 8 pixels, most significant bit first. Pixels
// beyond the right or bottom edge wrap around to the opposite edge.
// It returns true if any pixel that was on got turned off.
func (b *Bitmap) DrawSprite(x, y byte, rows []byte) bool {
	bits := bitreader.NewReader(bytes.NewReader(rows))
	collision := false

	for row := range rows {
		py := wrap(int(y)+row, Height)
		for col := range spriteWidth {
			set, err := bits.Read1()
			if err != nil {
				// the reader is backed by exactly len(rows)*8 bits
				return collision
			}
			if !set {
				continue
			}

			px := wrap(int(x)+col, Width)
			if b.pixels[py][px] {
				collision = true
			}
			b.pixels[py][px] = !b.pixels[py][px]
		}
	}
	return collision
}

// Copy returns a copy of the bitmap.
func (b *Bitmap) Copy() *Bitmap {
	c := *b
	return &c
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}

package screen

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Image renders the bitmap using the palette at its native resolution.
func (b *Bitmap) Image(palette Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := range Height {
		for x := range Width {
			img.SetRGBA(x, y, palette.Color(b.pixels[y][x]))
		}
	}
	return img
}

// RGBA writes the bitmap as packed RGBA pixels into buf, which has to hold
// Width*Height*4 bytes.
func (b *Bitmap) RGBA(buf []byte, palette Palette) {
	i := 0
	for y := range Height {
		for x := range Width {
			c := palette.Color(b.pixels[y][x])
			buf[i] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
			i += 4
		}
	}
}

// ScaledImage renders the bitmap enlarged by an integer scale factor using
// nearest neighbour sampling to keep the pixels sharp.
func (b *Bitmap) ScaledImage(palette Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := b.Image(palette)
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled bitmap as PNG image to w.
func (b *Bitmap) WritePNG(w io.Writer, palette Palette, scale int) error {
	if err := png.Encode(w, b.ScaledImage(palette, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

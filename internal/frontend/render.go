package frontend

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/screen"
)

// half block characters indexed by top pixel | bottom pixel<<1
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Render draws the bitmap as text using half block characters, each text
// row combines two pixel rows. Rows are separated by CR LF so that the
// output works on terminals in raw mode.
func Render(bitmap *screen.Bitmap) string {
	var sb strings.Builder
	sb.Grow(screen.Height / 2 * (screen.Width*3 + 2))

	for y := 0; y < screen.Height; y += 2 {
		if y > 0 {
			sb.WriteString("\r\n")
		}
		for x := range screen.Width {
			index := 0
			if bitmap.Pixel(x, y) {
				index |= 1
			}
			if bitmap.Pixel(x, y+1) {
				index |= 2
			}
			sb.WriteString(halfBlocks[index])
		}
	}
	return sb.String()
}

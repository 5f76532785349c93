package vm

// mockDisplay is a minimal 64x32 bitmap for testing.
type mockDisplay struct {
	pixels  [32][64]bool
	cleared int
}

func (d *mockDisplay) Clear() {
	d.pixels = [32][64]bool{}
	d.cleared++
}

func (d *mockDisplay) DrawSprite(x, y byte, rows []byte) bool {
	collision := false
	for row, data := range rows {
		py := (int(y) + row) % len(d.pixels)
		for bit := range 8 {
			if data&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % len(d.pixels[py])
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	return collision
}

// mockKeys is a fixed set of pressed keys.
type mockKeys map[byte]bool

func (k mockKeys) IsPressed(key byte) bool {
	return k[key]
}

func newTestCPU(quirks Quirks) (*CPU, *mockDisplay, mockKeys) {
	display := &mockDisplay{}
	keys := mockKeys{}
	cfg := DefaultConfig()
	cfg.Quirks = quirks
	cfg.Random = func() byte { return 0xA5 }
	return New(display, keys, cfg), display, keys
}

// loadProgram loads the given instruction words at the origin.
func loadProgram(c *CPU, words ...uint16) error {
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return c.Load(rom)
}

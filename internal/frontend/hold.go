package frontend

// heldKeys releases keys a fixed number of frames after their last press.
// Terminals only report key presses, so releases are synthesized.
type heldKeys struct {
	frames    int
	remaining map[byte]int
}

func newHeldKeys(frames int) *heldKeys {
	if frames < 1 {
		frames = 1
	}
	return &heldKeys{
		frames:    frames,
		remaining: make(map[byte]int),
	}
}

// press starts or extends the hold time of a key and returns whether the
// key was newly pressed.
func (h *heldKeys) press(key byte) bool {
	_, held := h.remaining[key]
	h.remaining[key] = h.frames
	return !held
}

// tick advances the hold timers by one frame and returns the keys to
// release in ascending order.
func (h *heldKeys) tick() []byte {
	var released []byte
	for key := range byte(16) {
		remaining, ok := h.remaining[key]
		if !ok {
			continue
		}
		remaining--
		if remaining > 0 {
			h.remaining[key] = remaining
			continue
		}
		delete(h.remaining, key)
		released = append(released, key)
	}
	return released
}

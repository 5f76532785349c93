package vm

// Signal is the outcome of a successfully executed instruction that the
// driver has to act on.
type Signal uint8

const (
	// Continue means no driver action is required.
	Continue Signal = iota
	// RedrawRequested means the display bitmap changed and should be presented.
	RedrawRequested
	// WaitForKeypress means execution is suspended until a key is released.
	WaitForKeypress
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case RedrawRequested:
		return "redraw"
	case WaitForKeypress:
		return "wait-for-keypress"
	default:
		return "unknown"
	}
}

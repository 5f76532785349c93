package vm

// Quirks selects between behaviours that differ across conforming
// interpreters.
type Quirks struct {
	// ShiftUsesVx makes 8xy6 and 8xyE shift Vx in place instead of
	// shifting Vy into Vx.
	ShiftUsesVx bool

	// LoadStoreIncrementsIndex makes Fx55 and Fx65 advance I by x+1 after
	// the register transfer.
	LoadStoreIncrementsIndex bool

	// TimersRunWhileWaiting keeps the timers counting down while execution
	// is suspended by Fx0A.
	TimersRunWhileWaiting bool
}

// DefaultQuirks returns the quirk set of the original COSMAC VIP interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		LoadStoreIncrementsIndex: true,
	}
}

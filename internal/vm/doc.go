// Package vm implements the CHIP-8 interpreter core.
//
// # Machine State
//
// The interpreter owns the complete machine state:
//   - 4KB of memory, the built-in font occupies 0x000-0x04F
//   - 16 general purpose 8-bit registers V0-VF
//   - the 16-bit address register I and the program counter
//   - a call stack of return addresses, capped at StackDepth entries
//   - the delay and sound countdown timers
//
// # Execution
//
// Step fetches the big-endian instruction word at the program counter,
// advances the counter by 2 and dispatches the decoded word to one of the 35
// instruction behaviours. A behaviour returns a Signal that the driver
// consumes: RedrawRequested after the display bitmap changed and
// WaitForKeypress when execution is suspended until a key is released.
// Malformed programs surface as errors that end the run.
//
// TickTimers is driven by an external 60 Hz clock and is independent of
// instruction execution.
//
// # Collaborators
//
// The display and keyboard are reached through the narrow Display and Keys
// interfaces, the core never accesses host devices directly.
package vm

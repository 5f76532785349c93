// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendAuto     = ""
	FrontendHeadless = "headless"
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// Frontends lists all selectable frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"CHIP-8 program file to run"`
	Output string `flag:"o" usage:"write a PNG snapshot of the final display"`

	Snapshot bool `flag:"snapshot" usage:"write the snapshot next to the program file (<program>.png) if -o is not set"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend             string `flag:"frontend" usage:"frontend: window, terminal, headless (default: auto-detect)"`
	Frames               int    `flag:"frames" usage:"stop after the given number of frames (0: unlimited)"`
	InstructionsPerFrame int    `flag:"ipf" usage:"instructions executed per 60 Hz frame" default:"10"`
	Origin               string `flag:"origin" usage:"program load and entry address" default:"0x200"`
	Mute                 bool   `flag:"mute" usage:"disable sound output"`
	Trace                bool   `flag:"trace" usage:"log every executed instruction (implies -debug)"`
	Debug                bool   `flag:"debug" usage:"enable debug logging"`
	Quiet                bool   `flag:"q" usage:"quiet mode"`
}

// Display contains display options.
type Display struct {
	Scale      int    `flag:"scale" usage:"window and snapshot scale factor" default:"8"`
	Foreground string `flag:"fg" usage:"colour of lit pixels" default:"#FFFFFF"`
	Background string `flag:"bg" usage:"colour of unlit pixels" default:"#000000"`
}

// Quirks contains interpreter compatibility options.
type Quirks struct {
	ShiftUsesVx        bool `flag:"shift-vx" usage:"8xy6/8xyE shift Vx instead of Vy"`
	NoIndexIncrement   bool `flag:"no-index-increment" usage:"Fx55/Fx65 leave I unchanged"`
	TimersWhileWaiting bool `flag:"timers-while-waiting" usage:"timers keep counting down during Fx0A"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Display
	Quirks

	LoadAddress uint16 // parsed Origin
}

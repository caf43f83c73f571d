// File: internal/protocol/command.go
// Description: The closed set of commands the model can issue. Adding a kind
// is a compile-time-checked change: the dispatcher switches exhaustively over
// this variant.
package protocol

import "fmt"

// Command is one parsed instruction from the model. The set of
// implementations is closed; see the concrete types below.
type Command interface {
	fmt.Stringer
	command()
}

// Click positions the cursor and clicks. Coordinates are on the [0,1000]
// command grid, mapped onto the active screen rectangle at dispatch time.
type Click struct {
	X, Y int
}

// Drag presses at the first grid point and releases at the second.
type Drag struct {
	X1, Y1, X2, Y2 int
}

// TypeText types the literal text, which may be empty.
type TypeText struct {
	Text string
}

// KeyPress taps one named key from the fixed vocabulary.
type KeyPress struct {
	Name string
}

// Calculate runs a calculation snippet in the sandbox. The model-facing
// keyword is PYTHON_EXECUTE.
type Calculate struct {
	Code string
}

// Wait pauses dispatch for the given number of milliseconds.
type Wait struct {
	Millis int
}

func (Click) command()    {}
func (Drag) command()     {}
func (TypeText) command() {}
func (KeyPress) command() {}
func (Calculate) command() {}
func (Wait) command()     {}

func (c Click) String() string    { return fmt.Sprintf("CLICK %d %d", c.X, c.Y) }
func (d Drag) String() string     { return fmt.Sprintf("DRAG %d %d %d %d", d.X1, d.Y1, d.X2, d.Y2) }
func (t TypeText) String() string { return "TYPE " + t.Text }
func (k KeyPress) String() string { return "KEY " + k.Name }
func (c Calculate) String() string { return "PYTHON_EXECUTE " + c.Code }
func (w Wait) String() string     { return fmt.Sprintf("WAIT %d", w.Millis) }

// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI fragments emitted by the host engine itself
var (
	csiSGR0       = []byte("\x1b[0m")
	csiCursorShow = []byte("\x1b[?25h")
	csiRIS        = []byte("\x1bc") // Reset to Initial State (emergency)
	// DECAWM: Auto-Wrap Mode
	csiAutoWrapOn = []byte("\x1b[?7h")
)

// Control bytes the host engine reacts to
const (
	ctlBEL = 0x07
)

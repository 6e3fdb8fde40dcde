package terminal

// Backend abstracts the output side of a host terminal.
// The host engine owns its Backend exclusively; implementations need no locking of their own
// beyond what resize notification requires.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns the current character grid
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error
}

package terminal

// Engine is an opaque single-threaded terminal emulator.
// No method is safe for concurrent use and none may be re-entered from within another call.
// After Deinit the engine must not be touched again.
type Engine interface {
	// Dimensions returns the character grid size
	Dimensions() (cols, rows int)

	// SetAutoflush selects immediate propagation of every write to the display surface
	SetAutoflush(enabled bool)

	// Flush pushes buffered state to the display surface
	Flush()

	// FullRefresh redraws every cell, bypassing change detection
	FullRefresh()

	// Write feeds raw bytes, including escape sequences, to the engine state machine
	Write(p []byte)

	// Deinit releases the engine
	Deinit()
}

// Initializer creates an Engine for the given surface.
// Returns a nil interface (never a typed nil) when the engine reports failure.
// opts may be nil to use every engine built-in.
type Initializer func(fb Framebuffer, opts *Options) Engine

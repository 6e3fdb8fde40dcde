// Package console provides Context, the single-owner handle around one rendering engine.
//
// A Context owns exactly one terminal.Engine from successful creation until Close, and is
// empty otherwise. Every method on an empty Context is a no-op, so a handle that failed to
// acquire an engine, was moved from with Take, or was closed can never reach a dead engine.
//
// A Context is not safe for concurrent use. It may be handed between goroutines, but only one
// may use it at a time; the registry package provides the locked global path.
package console

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/fbcon/terminal"
)

var (
	ErrNoInitializer = errors.New("console: nil engine initializer")
	ErrEngineInit    = errors.New("console: engine initialization failed")
)

// Context exclusively owns one rendering engine instance
type Context struct {
	_ noCopy

	engine terminal.Engine

	// scratch holds one encoded escape sequence at a time
	scratch [maxSeqLen]byte
}

// New initializes an engine for fb through init and wraps it.
// On failure no handle is returned; nothing beyond what the engine itself did has happened.
// This layer supplies no allocator to the engine.
func New(init terminal.Initializer, fb terminal.Framebuffer, opts *terminal.Options) (*Context, error) {
	if init == nil {
		return nil, ErrNoInitializer
	}
	engine := init(fb, opts)
	if engine == nil {
		return nil, fmt.Errorf("%w: %dx%d pitch %d", ErrEngineInit, fb.Width, fb.Height, fb.Pitch)
	}
	return &Context{engine: engine}, nil
}

// Valid reports whether the handle still owns an engine
func (c *Context) Valid() bool {
	return c != nil && c.engine != nil
}

// Take transfers ownership to a new handle and leaves c empty.
// Returns nil when c owns nothing.
func (c *Context) Take() *Context {
	if !c.Valid() {
		return nil
	}
	moved := &Context{engine: c.engine}
	c.engine = nil
	return moved
}

// Close tears down the owned engine exactly once. Safe on empty and already closed handles.
func (c *Context) Close() {
	if !c.Valid() {
		return
	}
	engine := c.engine
	c.engine = nil
	engine.Deinit()
}

// Raw returns the owned engine for advanced use, nil when empty.
// The caller must not Deinit it nor retain it past the handle's lifetime.
func (c *Context) Raw() terminal.Engine {
	if c == nil {
		return nil
	}
	return c.engine
}

// Dimensions returns the character grid, (0, 0) when empty
func (c *Context) Dimensions() (cols, rows int) {
	if !c.Valid() {
		return 0, 0
	}
	return c.engine.Dimensions()
}

// SetAutoflush toggles immediate propagation of every write
func (c *Context) SetAutoflush(enabled bool) {
	if !c.Valid() {
		return
	}
	c.engine.SetAutoflush(enabled)
}

// Flush pushes buffered output to the display surface
func (c *Context) Flush() {
	if !c.Valid() {
		return
	}
	c.engine.Flush()
}

// FullRefresh redraws every cell, e.g. after the surface was overwritten externally
func (c *Context) FullRefresh() {
	if !c.Valid() {
		return
	}
	c.engine.FullRefresh()
}

// WriteBytes forwards p verbatim; embedded escape sequences and encoding are the engine's concern
func (c *Context) WriteBytes(p []byte) {
	if !c.Valid() || len(p) == 0 {
		return
	}
	c.engine.Write(p)
}

// Write implements io.Writer. Output is best-effort and never reports an error.
func (c *Context) Write(p []byte) (int, error) {
	c.WriteBytes(p)
	return len(p), nil
}

// WriteString implements io.StringWriter with the same best-effort contract as Write
func (c *Context) WriteString(s string) (int, error) {
	c.WriteBytes([]byte(s))
	return len(s), nil
}

// Clear erases the screen and homes the cursor
func (c *Context) Clear() {
	c.WriteBytes(csiClear)
}

// MoveCursor places the cursor at 0-indexed column x, row y
func (c *Context) MoveCursor(x, y int) {
	if !c.Valid() {
		return
	}
	c.engine.Write(appendCursorPos(c.scratch[:0], x, y))
}

// SetColor selects 256-color palette index fg and, only when given, background bg.
// Omitting bg leaves the current background untouched. Extra values are ignored.
func (c *Context) SetColor(fg uint8, bg ...uint8) {
	if !c.Valid() {
		return
	}
	b := appendFg256(c.scratch[:0], fg)
	if len(bg) > 0 {
		b = appendBg256(b, bg[0])
	}
	c.engine.Write(b)
}

// ResetFormat clears all SGR attributes
func (c *Context) ResetFormat() {
	c.WriteBytes(csiSGR0)
}

// Printf formats into the engine in a single write. Formatting problems are rendered inline by
// fmt and never surface as errors: there may be nowhere to report them.
func (c *Context) Printf(format string, a ...any) {
	fmt.Fprintf(c, format, a...)
}

// Print formats using the default formats in a single write
func (c *Context) Print(a ...any) {
	fmt.Fprint(c, a...)
}

// Println formats using the default formats and appends a newline, in a single write
func (c *Context) Println(a ...any) {
	fmt.Fprintln(c, a...)
}

// noCopy flags copies to go vet's copylocks check; a copied Context would duplicate ownership
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

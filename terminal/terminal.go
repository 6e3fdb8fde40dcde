package terminal

import (
	"bufio"
	"bytes"
	"io"
	"os"
)

const hostBufferSize = 16384

// hostEngine renders into a host terminal. The terminal keeps its own cell grid, so the
// engine only buffers bytes and forwards them.
type hostEngine struct {
	backend   Backend
	writer    *bufio.Writer
	bell      func()
	autoflush bool
	finalized bool
}

// NewHost returns an Initializer producing engines that drive backend.
// A nil backend selects the process TTY. bell, when non-nil, is called once per BEL byte
// written. The framebuffer is validated but its pixel memory is unused: the TTY is the surface.
func NewHost(backend Backend, bell func()) Initializer {
	return func(fb Framebuffer, opts *Options) Engine {
		if err := fb.Validate(); err != nil {
			return nil
		}
		b := backend
		if b == nil {
			b = newBackend()
		}
		if err := b.Init(); err != nil {
			return nil
		}
		return &hostEngine{
			backend:   b,
			writer:    bufio.NewWriterSize(backendWriter{b}, hostBufferSize),
			bell:      bell,
			autoflush: true,
		}
	}
}

func (e *hostEngine) Dimensions() (int, int) {
	return e.backend.Size()
}

func (e *hostEngine) SetAutoflush(enabled bool) {
	e.autoflush = enabled
	if enabled {
		e.writer.Flush()
	}
}

func (e *hostEngine) Flush() {
	e.writer.Flush()
}

// FullRefresh only drains pending output; a host terminal cannot be asked to repaint
func (e *hostEngine) FullRefresh() {
	e.writer.Flush()
}

func (e *hostEngine) Write(p []byte) {
	if e.finalized {
		return
	}
	e.writer.Write(p)
	if e.bell != nil {
		for rest := p; ; {
			i := bytes.IndexByte(rest, ctlBEL)
			if i < 0 {
				break
			}
			e.bell()
			rest = rest[i+1:]
		}
	}
	if e.autoflush {
		e.writer.Flush()
	}
}

// Deinit restores attributes and cursor visibility, then releases the backend
func (e *hostEngine) Deinit() {
	if e.finalized {
		return
	}
	e.writer.Write(csiSGR0)
	e.writer.Write(csiCursorShow)
	e.writer.Flush()
	e.backend.Fini()
	e.finalized = true
}

// backendWriter adapts Backend to io.Writer for bufio
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// EmergencyReset attempts to restore the display to a sane state.
// Call this from panic recovery when the owning engine cannot be torn down normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

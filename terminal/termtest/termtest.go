// Package termtest provides a recording terminal.Engine for tests.
package termtest

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fbcon/terminal"
)

// Engine records every call it receives.
// Its own bookkeeping is locked so tests can inspect it from any goroutine, while inFlight
// detects callers that entered the engine concurrently, which a real engine would not survive.
type Engine struct {
	Cols, Rows int

	// WriteDelay stretches each Write to widen race windows in serialization tests
	WriteDelay time.Duration

	mu          sync.Mutex
	writes      [][]byte
	flushes     int
	refreshes   int
	autoflush   []bool
	deinits     int
	afterDeinit int

	inFlight atomic.Int32
	overlaps atomic.Int32
}

// New returns a recording engine reporting cols x rows
func New(cols, rows int) *Engine {
	return &Engine{Cols: cols, Rows: rows}
}

// Initializer returns an Initializer handing out e after validating the framebuffer
func Initializer(e *Engine) terminal.Initializer {
	return func(fb terminal.Framebuffer, opts *terminal.Options) terminal.Engine {
		if err := fb.Validate(); err != nil {
			return nil
		}
		return e
	}
}

// Failing returns an Initializer that always reports failure
func Failing() terminal.Initializer {
	return func(terminal.Framebuffer, *terminal.Options) terminal.Engine { return nil }
}

func (e *Engine) enter() {
	if e.inFlight.Add(1) > 1 {
		e.overlaps.Add(1)
	}
	e.mu.Lock()
	if e.deinits > 0 {
		e.afterDeinit++
	}
	e.mu.Unlock()
}

func (e *Engine) leave() {
	e.inFlight.Add(-1)
}

func (e *Engine) Dimensions() (int, int) {
	e.enter()
	defer e.leave()
	return e.Cols, e.Rows
}

func (e *Engine) SetAutoflush(enabled bool) {
	e.enter()
	defer e.leave()
	e.mu.Lock()
	e.autoflush = append(e.autoflush, enabled)
	e.mu.Unlock()
}

func (e *Engine) Flush() {
	e.enter()
	defer e.leave()
	e.mu.Lock()
	e.flushes++
	e.mu.Unlock()
}

func (e *Engine) FullRefresh() {
	e.enter()
	defer e.leave()
	e.mu.Lock()
	e.refreshes++
	e.mu.Unlock()
}

func (e *Engine) Write(p []byte) {
	e.enter()
	defer e.leave()
	if e.WriteDelay > 0 {
		time.Sleep(e.WriteDelay)
	}
	e.mu.Lock()
	e.writes = append(e.writes, bytes.Clone(p))
	e.mu.Unlock()
}

func (e *Engine) Deinit() {
	e.enter()
	defer e.leave()
	e.mu.Lock()
	e.deinits++
	e.mu.Unlock()
}

// Writes returns a copy of every Write payload in call order
func (e *Engine) Writes() [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]byte, len(e.writes))
	copy(out, e.writes)
	return out
}

// Output returns all written bytes concatenated
func (e *Engine) Output() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var b bytes.Buffer
	for _, w := range e.writes {
		b.Write(w)
	}
	return b.String()
}

// Flushes returns the number of Flush calls
func (e *Engine) Flushes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushes
}

// Refreshes returns the number of FullRefresh calls
func (e *Engine) Refreshes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshes
}

// Autoflush returns the SetAutoflush arguments in call order
func (e *Engine) Autoflush() []bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]bool(nil), e.autoflush...)
}

// Deinits returns the number of Deinit calls
func (e *Engine) Deinits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deinits
}

// CallsAfterDeinit counts calls of any kind received after the first Deinit, Deinit included
func (e *Engine) CallsAfterDeinit() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.afterDeinit
}

// Overlaps counts calls that entered while another call was still running
func (e *Engine) Overlaps() int {
	return int(e.overlaps.Load())
}

// Package registry holds the process-wide console: at most one console.Context behind a spin
// lock, with an explicit installed flag.
//
// Lifecycle: uninitialized at start, initialized by Install, and initialized until the process
// ends. There is no global teardown.
package registry

import (
	"errors"

	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/spin"
)

var ErrEmptyHandle = errors.New("registry: cannot install an empty console handle")

// Registry is a lock-protected holder of at most one console handle.
// The zero value is ready to use and uninitialized.
// Invariant, at every unlock: initialized == (ctx owns an engine).
type Registry struct {
	mu          spin.Mutex
	initialized bool
	ctx         *console.Context
}

// Default is the process-wide registry used by the kfmt print functions
var Default Registry

// Install takes ownership of ctx and makes it the registry's instance; ctx is left empty.
// A previously installed handle is replaced and torn down before the lock is released, so no
// caller observes the registry initialized without a live handle, and the old engine is never
// reached again.
func (r *Registry) Install(ctx *console.Context) error {
	owned := ctx.Take()
	if owned == nil {
		return ErrEmptyHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.ctx
	r.ctx = owned
	r.initialized = true
	prev.Close()
	return nil
}

// Initialized reports whether a handle has been installed
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Do runs fn with exclusive access to the installed handle and reports whether it ran.
// fn executes under the lock and must not re-enter the registry. A handle that fn closes or
// moves out with Take is dropped and the registry reverts to uninitialized; a taken engine is
// then the caller's alone and no longer serialized by the registry.
func (r *Registry) Do(fn func(*console.Context)) bool {
	r.mu.Lock()
	defer r.release()
	if !r.initialized {
		return false
	}
	fn(r.ctx)
	return true
}

// With runs fn with exclusive access to r's handle and returns its result.
// When nothing is installed fn is not called and ok is false.
// fn executes under the lock and must not re-enter the registry, or it deadlocks.
func With[R any](r *Registry, fn func(*console.Context) R) (result R, ok bool) {
	r.mu.Lock()
	defer r.release()
	if !r.initialized {
		return result, false
	}
	return fn(r.ctx), true
}

// release restores the invariant after a callback and unlocks. Runs deferred, so a callback
// that panics after emptying the handle still leaves the registry consistent.
func (r *Registry) release() {
	if r.initialized && !r.ctx.Valid() {
		r.ctx = nil
		r.initialized = false
	}
	r.mu.Unlock()
}

// Install installs ctx into Default
func Install(ctx *console.Context) error {
	return Default.Install(ctx)
}

// Initialized reports whether Default holds a handle
func Initialized() bool {
	return Default.Initialized()
}

// Do runs fn against Default's handle
func Do(fn func(*console.Context)) bool {
	return Default.Do(fn)
}

// WithInstance runs fn against Default's handle
func WithInstance[R any](fn func(*console.Context) R) (R, bool) {
	return With(&Default, fn)
}

// @focus: #sys { term }
// Package terminal defines the rendering engine contract consumed by the console layer.
//
// An Engine is an opaque, stateful, single-threaded terminal emulator that owns a display
// surface, interprets ANSI escape sequences in the byte stream it is given, and must never be
// entered by two goroutines at once. Engines are created by an Initializer from a Framebuffer
// description and optional Options overrides.
//
// Provided here:
//   - Engine, Initializer, Framebuffer, Options: the contract
//   - NewHost: an engine that drives a host TTY (development, serial consoles)
//   - Backend: the TTY abstraction behind the host engine (unix TTY or any io.Writer)
//   - EmergencyReset: best-effort display restore from crash paths
//
// Adapters for other engines live in subpackages: flanterm (cgo), screen (tcell), termtest.
package terminal

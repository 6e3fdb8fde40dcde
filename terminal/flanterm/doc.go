// Package flanterm binds the flanterm C terminal emulator as a terminal.Engine.
//
// Build with cgo and the flanterm tag, with flanterm headers and a static libflanterm on the
// compiler search paths:
//
//	CGO_CFLAGS=-I/path/to/flanterm CGO_LDFLAGS=-L/path/to/lib go build -tags flanterm
//
// The engine is created with null allocator hooks, so flanterm uses its built-in bump
// allocator; this package never allocates on its behalf. flanterm retains the framebuffer
// pointer: Framebuffer.Pixels must reference memory outside the Go heap (a mapped hardware
// framebuffer), and a Canvas override likewise.
package flanterm

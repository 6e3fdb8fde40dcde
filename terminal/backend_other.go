//go:build !unix

package terminal

import "os"

// newBackend falls back to a plain writer on platforms without a unix TTY
func newBackend() Backend {
	return NewWriterBackend(os.Stdout, 80, 25)
}

package terminal

import (
	"io"
	"sync/atomic"
)

// WriterBackend drives any io.Writer with a fixed or externally updated grid size
type WriterBackend struct {
	w    io.Writer
	cols atomic.Int32
	rows atomic.Int32
}

// NewWriterBackend returns a Backend over w reporting cols x rows.
// Serial consoles and tests use it; no terminal mode is touched.
func NewWriterBackend(w io.Writer, cols, rows int) *WriterBackend {
	b := &WriterBackend{w: w}
	b.Resize(cols, rows)
	return b
}

func (b *WriterBackend) Init() error { return nil }

func (b *WriterBackend) Fini() {}

func (b *WriterBackend) Size() (int, int) {
	return int(b.cols.Load()), int(b.rows.Load())
}

func (b *WriterBackend) Write(p []byte) error {
	_, err := b.w.Write(p)
	return err
}

// Resize updates the reported grid, e.g. after an out-of-band size report
func (b *WriterBackend) Resize(cols, rows int) {
	b.cols.Store(int32(cols))
	b.rows.Store(int32(rows))
}

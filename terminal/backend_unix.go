//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	out   *os.File
	outFd int

	cols atomic.Int32
	rows atomic.Int32

	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewTTYBackend returns a Backend writing to the controlling terminal on out
func NewTTYBackend(out *os.File) Backend {
	return &unixBackend{
		out:   out,
		outFd: int(out.Fd()),
	}
}

func newBackend() Backend {
	return NewTTYBackend(os.Stdout)
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return fmt.Errorf("terminal: fd %d is not a terminal", b.outFd)
	}
	b.refreshSize()

	b.sigCh = make(chan os.Signal, 1)
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	signal.Notify(b.sigCh, unix.SIGWINCH)
	go b.watchLoop()
	return nil
}

func (b *unixBackend) Fini() {
	if b.stopCh == nil {
		return
	}
	signal.Stop(b.sigCh)
	close(b.stopCh)
	<-b.doneCh
	b.stopCh = nil
}

// Size returns the cached grid, refreshed on SIGWINCH
func (b *unixBackend) Size() (int, int) {
	return int(b.cols.Load()), int(b.rows.Load())
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// watchLoop refreshes the cached size on every window change
func (b *unixBackend) watchLoop() {
	defer close(b.doneCh)
	for {
		select {
		case <-b.stopCh:
			return
		case <-b.sigCh:
			b.refreshSize()
		}
	}
}

func (b *unixBackend) refreshSize() {
	w, h, err := term.GetSize(b.outFd)
	if err != nil || w <= 0 || h <= 0 {
		w, h = 80, 24 // Fallback
	}
	b.cols.Store(int32(w))
	b.rows.Store(int32(h))
}

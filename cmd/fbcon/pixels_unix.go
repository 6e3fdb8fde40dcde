//go:build unix

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocPixels maps n pixels of anonymous memory outside the Go heap. A native engine may keep
// the pointer for its whole life, so the mapping is never released.
func allocPixels(n int) ([]uint32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pixels: invalid size %d", n)
	}
	b, err := unix.Mmap(-1, 0, n*4, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("pixels: mmap: %w", err)
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), n), nil
}

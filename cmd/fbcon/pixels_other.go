//go:build !unix

package main

import "errors"

func allocPixels(int) ([]uint32, error) {
	return nil, errors.New("pixels: no off-heap framebuffer memory on this platform")
}

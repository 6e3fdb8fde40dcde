package terminal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry = errors.New("terminal: invalid framebuffer geometry")
	ErrShortBuffer     = errors.New("terminal: pixel buffer shorter than pitch*height")
)

// ChannelMask describes one color channel inside a pixel
type ChannelMask struct {
	Size  uint8 // bits
	Shift uint8 // bit offset of the least significant bit
}

// Framebuffer describes a linear pixel surface
type Framebuffer struct {
	// Pixels is row-major pixel memory, Pitch pixels per row.
	// Engines that retain the pointer (cgo) require memory the Go allocator does not manage,
	// e.g. a mapped hardware framebuffer.
	Pixels []uint32

	Width  int
	Height int
	Pitch  int // pixels per row, >= Width

	Red   ChannelMask
	Green ChannelMask
	Blue  ChannelMask
}

// RGB888 describes the common 32-bpp xRGB layout
func RGB888(pixels []uint32, width, height int) Framebuffer {
	return Framebuffer{
		Pixels: pixels,
		Width:  width,
		Height: height,
		Pitch:  width,
		Red:    ChannelMask{Size: 8, Shift: 16},
		Green:  ChannelMask{Size: 8, Shift: 8},
		Blue:   ChannelMask{Size: 8, Shift: 0},
	}
}

// Validate checks geometry and channel layout
func (fb Framebuffer) Validate() error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, fb.Width, fb.Height)
	}
	if fb.Pitch < fb.Width {
		return fmt.Errorf("%w: pitch %d below width %d", ErrInvalidGeometry, fb.Pitch, fb.Width)
	}
	for _, ch := range [...]struct {
		name string
		mask ChannelMask
	}{{"red", fb.Red}, {"green", fb.Green}, {"blue", fb.Blue}} {
		if ch.mask.Size == 0 || ch.mask.Size > 8 || int(ch.mask.Size)+int(ch.mask.Shift) > 32 {
			return fmt.Errorf("%w: %s mask %d<<%d", ErrInvalidGeometry, ch.name, ch.mask.Size, ch.mask.Shift)
		}
	}
	if fb.Pixels != nil && len(fb.Pixels) < fb.Pitch*fb.Height {
		return fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(fb.Pixels), fb.Pitch*fb.Height)
	}
	return nil
}

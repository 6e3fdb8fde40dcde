//go:build cgo && flanterm

package flanterm

/*
#cgo LDFLAGS: -lflanterm

#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>

#include <flanterm.h>
#include <backends/fb.h>
*/
import "C"

import (
	"unsafe"

	"github.com/lixenwraith/fbcon/terminal"
)

const bytesPerPixel = 4

type engine struct {
	ctx *C.struct_flanterm_context
}

// Init creates a framebuffer-backed flanterm instance. Returns nil when the geometry is
// invalid or flanterm reports failure.
func Init(fb terminal.Framebuffer, opts *terminal.Options) terminal.Engine {
	if fb.Validate() != nil || len(fb.Pixels) == 0 {
		return nil
	}
	o := opts.Normalize()

	var (
		canvas     *C.uint32_t
		ansi       *C.uint32_t
		ansiBright *C.uint32_t
		font       unsafe.Pointer
		fontW      C.size_t
		fontH      C.size_t
		fontSp     C.size_t = 1
	)
	if len(o.Canvas) > 0 {
		canvas = (*C.uint32_t)(unsafe.Pointer(&o.Canvas[0]))
	}
	if o.ANSIColours != nil {
		ansi = (*C.uint32_t)(unsafe.Pointer(&o.ANSIColours[0]))
	}
	if o.ANSIBrightColours != nil {
		ansiBright = (*C.uint32_t)(unsafe.Pointer(&o.ANSIBrightColours[0]))
	}
	if o.Font != nil && len(o.Font.Bitmap) > 0 {
		font = unsafe.Pointer(&o.Font.Bitmap[0])
		fontW = C.size_t(o.Font.Width)
		fontH = C.size_t(o.Font.Height)
		fontSp = C.size_t(o.Font.Spacing)
	}

	ctx := C.flanterm_fb_init(
		nil, // malloc
		nil, // free
		(*C.uint32_t)(unsafe.Pointer(&fb.Pixels[0])),
		C.size_t(fb.Width),
		C.size_t(fb.Height),
		C.size_t(fb.Pitch*bytesPerPixel),
		C.uint8_t(fb.Red.Size), C.uint8_t(fb.Red.Shift),
		C.uint8_t(fb.Green.Size), C.uint8_t(fb.Green.Shift),
		C.uint8_t(fb.Blue.Size), C.uint8_t(fb.Blue.Shift),
		canvas,
		ansi,
		ansiBright,
		colour(o.DefaultBg),
		colour(o.DefaultFg),
		colour(o.DefaultBgBright),
		colour(o.DefaultFgBright),
		font,
		fontW,
		fontH,
		fontSp,
		C.size_t(o.ScaleX),
		C.size_t(o.ScaleY),
		C.size_t(o.Margin),
	)
	if ctx == nil {
		return nil
	}
	return &engine{ctx: ctx}
}

// colour passes an optional default color; flanterm copies the value during init
func colour(v *uint32) *C.uint32_t {
	if v == nil {
		return nil
	}
	return (*C.uint32_t)(unsafe.Pointer(v))
}

func (e *engine) Dimensions() (int, int) {
	if e.ctx == nil {
		return 0, 0
	}
	var cols, rows C.size_t
	C.flanterm_get_dimensions(e.ctx, &cols, &rows)
	return int(cols), int(rows)
}

func (e *engine) SetAutoflush(enabled bool) {
	if e.ctx == nil {
		return
	}
	C.flanterm_set_autoflush(e.ctx, C.bool(enabled))
}

func (e *engine) Flush() {
	if e.ctx == nil {
		return
	}
	C.flanterm_flush(e.ctx)
}

func (e *engine) FullRefresh() {
	if e.ctx == nil {
		return
	}
	C.flanterm_full_refresh(e.ctx)
}

func (e *engine) Write(p []byte) {
	if e.ctx == nil || len(p) == 0 {
		return
	}
	C.flanterm_write(e.ctx, (*C.char)(unsafe.Pointer(&p[0])), C.size_t(len(p)))
}

func (e *engine) Deinit() {
	if e.ctx == nil {
		return
	}
	C.flanterm_deinit(e.ctx)
	e.ctx = nil
}

// Available reports whether this build links flanterm
func Available() bool { return true }

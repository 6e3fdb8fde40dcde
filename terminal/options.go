package terminal

// Default glyph cell used when no font override is supplied
const (
	DefaultFontWidth  = 8
	DefaultFontHeight = 16
)

// Font is a bitmap font override
type Font struct {
	Bitmap  []byte // Height bytes per glyph row-major, one bit per pixel, MSB leftmost
	Width   int
	Height  int
	Spacing int // horizontal pixels between glyphs
}

// Options carries optional engine overrides. Nil pointers and zero values select built-ins.
type Options struct {
	Canvas []uint32

	ANSIColours       *[8]uint32
	ANSIBrightColours *[8]uint32

	DefaultBg       *uint32
	DefaultFg       *uint32
	DefaultBgBright *uint32
	DefaultFgBright *uint32

	Font   *Font
	ScaleX int
	ScaleY int
	Margin int
}

// Normalize returns a copy with unset scalars filled with engine defaults.
// A nil receiver yields the all-defaults value.
func (o *Options) Normalize() Options {
	var n Options
	if o != nil {
		n = *o
	}
	if n.ScaleX <= 0 {
		n.ScaleX = 1
	}
	if n.ScaleY <= 0 {
		n.ScaleY = 1
	}
	if n.Margin < 0 {
		n.Margin = 0
	}
	if n.Font != nil && n.Font.Spacing <= 0 {
		f := *n.Font
		f.Spacing = 1
		n.Font = &f
	}
	return n
}

// CellSize returns the on-surface pixel size of one character cell
func (o *Options) CellSize() (width, height int) {
	n := o.Normalize()
	width, height = DefaultFontWidth, DefaultFontHeight
	if n.Font != nil && n.Font.Width > 0 && n.Font.Height > 0 {
		width = n.Font.Width + n.Font.Spacing
		height = n.Font.Height
	}
	return width * n.ScaleX, height * n.ScaleY
}

// Grid returns the character grid that fits the framebuffer, honoring margins
func (o *Options) Grid(fb Framebuffer) (cols, rows int) {
	n := o.Normalize()
	cw, ch := o.CellSize()
	cols = (fb.Width - 2*n.Margin) / cw
	rows = (fb.Height - 2*n.Margin) / ch
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// Package screen adapts a tcell.Screen into a terminal.Engine.
//
// The adapter interprets only what the console layer and ordinary text need: printable UTF-8,
// CR, LF, BS, TAB, BEL, cursor positioning and movement, erase in display/line, and SGR
// colors with bold and reverse. Everything else is consumed and ignored. The visible grid
// scrolls at the bottom row; nothing is kept above it.
package screen

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/fbcon/terminal"
)

const (
	maxParams = 16
	tabWidth  = 8
)

type parseState uint8

const (
	stateGround parseState = iota
	stateEscape
	stateCSI
	stateCharset // ESC ( or ESC ) awaiting the designator byte
)

type cell struct {
	r     rune
	style tcell.Style
}

// Engine renders into a tcell.Screen. Like every terminal.Engine it is single-threaded.
type Engine struct {
	screen tcell.Screen
	cols   int
	rows   int
	grid   []cell

	cx, cy    int
	style     tcell.Style
	base      tcell.Style
	ansi      *[8]uint32
	bright    *[8]uint32
	autoflush bool
	finalized bool

	state   parseState
	private bool
	params  [maxParams]int
	nparams int
	utf     [utf8.UTFMax]byte
	nutf    int
}

// New returns an Initializer that drives s. The grid is the framebuffer divided into font
// cells; a simulation screen is resized to it, a real screen keeps its own size.
// Initialization fails on invalid geometry, an empty grid, or a screen that cannot start.
func New(s tcell.Screen) terminal.Initializer {
	return func(fb terminal.Framebuffer, opts *terminal.Options) terminal.Engine {
		if s == nil || fb.Validate() != nil {
			return nil
		}
		cols, rows := opts.Grid(fb)
		if cols == 0 || rows == 0 {
			return nil
		}
		if err := s.Init(); err != nil {
			return nil
		}
		if sim, ok := s.(tcell.SimulationScreen); ok {
			sim.SetSize(cols, rows)
		} else {
			cols, rows = s.Size()
		}

		n := opts.Normalize()
		e := &Engine{
			screen:    s,
			cols:      cols,
			rows:      rows,
			grid:      make([]cell, cols*rows),
			ansi:      n.ANSIColours,
			bright:    n.ANSIBrightColours,
			autoflush: true,
		}
		e.base = tcell.StyleDefault
		if n.DefaultFg != nil {
			e.base = e.base.Foreground(rgb(*n.DefaultFg))
		}
		if n.DefaultBg != nil {
			e.base = e.base.Background(rgb(*n.DefaultBg))
		}
		e.style = e.base
		e.eraseRange(0, len(e.grid))
		e.present()
		return e
	}
}

func (e *Engine) Dimensions() (int, int) {
	return e.cols, e.rows
}

func (e *Engine) SetAutoflush(enabled bool) {
	e.autoflush = enabled
}

func (e *Engine) Flush() {
	if e.finalized {
		return
	}
	e.present()
}

// FullRefresh repaints every cell from the engine's grid and forces tcell to redraw
func (e *Engine) FullRefresh() {
	if e.finalized {
		return
	}
	for i, c := range e.grid {
		e.screen.SetContent(i%e.cols, i/e.cols, c.r, nil, c.style)
	}
	e.screen.ShowCursor(e.cx, e.cy)
	e.screen.Sync()
}

func (e *Engine) Write(p []byte) {
	if e.finalized {
		return
	}
	for _, b := range p {
		e.feed(b)
	}
	if e.autoflush {
		e.present()
	}
}

func (e *Engine) Deinit() {
	if e.finalized {
		return
	}
	e.finalized = true
	e.screen.Fini()
}

// CellAt returns the rune and style at column x, row y; a zero rune for out-of-range or blank
func (e *Engine) CellAt(x, y int) (rune, tcell.Style) {
	if x < 0 || y < 0 || x >= e.cols || y >= e.rows {
		return 0, tcell.StyleDefault
	}
	c := e.grid[y*e.cols+x]
	return c.r, c.style
}

// Cursor returns the 0-indexed cursor position
func (e *Engine) Cursor() (x, y int) {
	return e.cx, e.cy
}

func (e *Engine) present() {
	e.screen.ShowCursor(e.cx, e.cy)
	e.screen.Show()
}

// feed advances the byte-level state machine
func (e *Engine) feed(b byte) {
	switch e.state {
	case stateEscape:
		e.feedEscape(b)
		return
	case stateCSI:
		e.feedCSI(b)
		return
	case stateCharset:
		e.state = stateGround
		return
	}

	if e.nutf > 0 || b >= utf8.RuneSelf {
		e.feedUTF8(b)
		return
	}

	switch b {
	case 0x1b:
		e.state = stateEscape
	case '\n':
		e.cx = 0
		e.lineFeed()
	case '\r':
		e.cx = 0
	case '\b':
		if e.cx > 0 {
			e.cx--
		}
	case '\t':
		e.cx = min((e.cx/tabWidth+1)*tabWidth, e.cols-1)
	case 0x07:
		e.screen.Beep()
	default:
		if b >= 0x20 && b != 0x7f {
			e.putRune(rune(b))
		}
	}
}

func (e *Engine) feedUTF8(b byte) {
	if e.nutf > 0 && !utf8.RuneStart(b) && e.nutf < len(e.utf) {
		e.utf[e.nutf] = b
		e.nutf++
	} else {
		if e.nutf > 0 {
			// Truncated sequence followed by a new start byte
			e.putRune(utf8.RuneError)
			e.nutf = 0
		}
		if b < utf8.RuneSelf {
			e.feed(b)
			return
		}
		e.utf[0] = b
		e.nutf = 1
	}
	if utf8.FullRune(e.utf[:e.nutf]) {
		r, _ := utf8.DecodeRune(e.utf[:e.nutf])
		e.nutf = 0
		e.putRune(r)
	}
}

func (e *Engine) feedEscape(b byte) {
	switch b {
	case '[':
		e.state = stateCSI
		e.private = false
		e.nparams = 0
		e.params = [maxParams]int{}
	case '(', ')':
		e.state = stateCharset
	case 'c':
		e.state = stateGround
		e.style = e.base
		e.cx, e.cy = 0, 0
		e.eraseRange(0, len(e.grid))
	default:
		e.state = stateGround
	}
}

func (e *Engine) feedCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		if e.nparams == 0 {
			e.nparams = 1
		}
		if i := e.nparams - 1; i < maxParams && e.params[i] < 100000 {
			e.params[i] = e.params[i]*10 + int(b-'0')
		}
	case b == ';':
		if e.nparams == 0 {
			e.nparams = 1
		}
		if e.nparams < maxParams {
			e.nparams++
		}
	case b == '?' || b == '>' || b == '=':
		e.private = true
	case b >= 0x40 && b <= 0x7e:
		e.state = stateGround
		if !e.private {
			e.dispatch(b)
		}
	case b == 0x1b:
		e.state = stateEscape
	}
}

// param returns parameter i, or def when absent or zero
func (e *Engine) param(i, def int) int {
	if i >= e.nparams || e.params[i] == 0 {
		return def
	}
	return e.params[i]
}

func (e *Engine) dispatch(final byte) {
	switch final {
	case 'H', 'f':
		e.cy = clamp(e.param(0, 1)-1, 0, e.rows-1)
		e.cx = clamp(e.param(1, 1)-1, 0, e.cols-1)
	case 'A':
		e.cy = clamp(e.cy-e.param(0, 1), 0, e.rows-1)
	case 'B':
		e.cy = clamp(e.cy+e.param(0, 1), 0, e.rows-1)
	case 'C':
		e.cx = clamp(e.cx+e.param(0, 1), 0, e.cols-1)
	case 'D':
		e.cx = clamp(e.cx-e.param(0, 1), 0, e.cols-1)
	case 'J':
		pos := e.cy*e.cols + e.cx
		switch e.param(0, 0) {
		case 0:
			e.eraseRange(pos, len(e.grid))
		case 1:
			e.eraseRange(0, pos+1)
		case 2, 3:
			e.eraseRange(0, len(e.grid))
		}
	case 'K':
		row := e.cy * e.cols
		switch e.param(0, 0) {
		case 0:
			e.eraseRange(row+e.cx, row+e.cols)
		case 1:
			e.eraseRange(row, row+e.cx+1)
		case 2:
			e.eraseRange(row, row+e.cols)
		}
	case 'm':
		e.sgr()
	}
}

func (e *Engine) sgr() {
	if e.nparams == 0 {
		e.style = e.base
		return
	}
	for i := 0; i < e.nparams; i++ {
		p := e.params[i]
		switch {
		case p == 0:
			e.style = e.base
		case p == 1:
			e.style = e.style.Bold(true)
		case p == 7:
			e.style = e.style.Reverse(true)
		case p == 22:
			e.style = e.style.Bold(false)
		case p == 27:
			e.style = e.style.Reverse(false)
		case p >= 30 && p <= 37:
			e.style = e.style.Foreground(e.palette(p - 30))
		case p == 39:
			fg, _, _ := e.base.Decompose()
			e.style = e.style.Foreground(fg)
		case p >= 40 && p <= 47:
			e.style = e.style.Background(e.palette(p - 40))
		case p == 49:
			_, bg, _ := e.base.Decompose()
			e.style = e.style.Background(bg)
		case p >= 90 && p <= 97:
			e.style = e.style.Foreground(e.palette(p - 90 + 8))
		case p >= 100 && p <= 107:
			e.style = e.style.Background(e.palette(p - 100 + 8))
		case p == 38 || p == 48:
			c, used, ok := e.extendedColor(i + 1)
			i += used
			if !ok {
				continue
			}
			if p == 38 {
				e.style = e.style.Foreground(c)
			} else {
				e.style = e.style.Background(c)
			}
		}
	}
}

// extendedColor parses "5;n" or "2;r;g;b" starting at params[i]; used counts consumed params
func (e *Engine) extendedColor(i int) (c tcell.Color, used int, ok bool) {
	if i >= e.nparams {
		return 0, 0, false
	}
	switch e.params[i] {
	case 5:
		if i+1 >= e.nparams {
			return 0, 1, false
		}
		return e.palette(e.params[i+1] & 0xff), 2, true
	case 2:
		if i+3 >= e.nparams {
			return 0, e.nparams - i, false
		}
		r, g, b := e.params[i+1]&0xff, e.params[i+2]&0xff, e.params[i+3]&0xff
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), 4, true
	}
	return 0, 1, false
}

// palette maps an indexed color, honoring the 16-color overrides
func (e *Engine) palette(n int) tcell.Color {
	switch {
	case n < 8 && e.ansi != nil:
		return rgb(e.ansi[n])
	case n >= 8 && n < 16 && e.bright != nil:
		return rgb(e.bright[n-8])
	}
	return tcell.PaletteColor(n)
}

// putRune writes r at the cursor. A cursor left at column cols marks a pending wrap, taken by
// the next printable rune.
func (e *Engine) putRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 || w > e.cols {
		return
	}
	if e.cx+w > e.cols {
		e.cx = 0
		e.lineFeed()
	}
	e.setCell(e.cx, e.cy, cell{r: r, style: e.style})
	if w == 2 {
		// Continuation half of a wide rune
		e.grid[e.cy*e.cols+e.cx+1] = cell{style: e.style}
	}
	e.cx += w
}

func (e *Engine) lineFeed() {
	if e.cy+1 < e.rows {
		e.cy++
		return
	}
	copy(e.grid, e.grid[e.cols:])
	e.eraseRange(len(e.grid)-e.cols, len(e.grid))
	for i, c := range e.grid[:len(e.grid)-e.cols] {
		e.screen.SetContent(i%e.cols, i/e.cols, c.r, nil, c.style)
	}
}

func (e *Engine) setCell(x, y int, c cell) {
	e.grid[y*e.cols+x] = c
	r := c.r
	if r == 0 {
		r = ' '
	}
	e.screen.SetContent(x, y, r, nil, c.style)
}

// eraseRange blanks grid indices [from, to) with the current background
func (e *Engine) eraseRange(from, to int) {
	_, bg, _ := e.style.Decompose()
	blank := cell{style: e.base.Background(bg)}
	from = clamp(from, 0, len(e.grid))
	to = clamp(to, 0, len(e.grid))
	for i := from; i < to; i++ {
		e.setCell(i%e.cols, i/e.cols, blank)
	}
}

func rgb(v uint32) tcell.Color {
	return tcell.NewHexColor(int32(v & 0xffffff))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package screen

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fbcon/console"
	"github.com/lixenwraith/fbcon/terminal"
)

// newEngine builds a 40x10 grid: 320x160 pixels of default 8x16 cells
func newEngine(t *testing.T, opts *terminal.Options) (*Engine, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	eng := New(sim)(terminal.RGB888(nil, 320, 160), opts)
	if eng == nil {
		t.Fatal("screen engine init failed")
	}
	t.Cleanup(eng.Deinit)
	return eng.(*Engine), sim
}

func rowText(e *Engine, y, n int) string {
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		r, _ := e.CellAt(x, y)
		if r == 0 {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func TestNew_GridFromFramebuffer(t *testing.T) {
	e, sim := newEngine(t, nil)
	if c, r := e.Dimensions(); c != 40 || r != 10 {
		t.Fatalf("Dimensions = %dx%d, want 40x10", c, r)
	}
	if w, h := sim.Size(); w != 40 || h != 10 {
		t.Fatalf("simulation screen sized %dx%d", w, h)
	}
}

func TestNew_Failures(t *testing.T) {
	if New(nil)(terminal.RGB888(nil, 320, 160), nil) != nil {
		t.Error("nil screen produced an engine")
	}
	sim := tcell.NewSimulationScreen("UTF-8")
	if New(sim)(terminal.RGB888(nil, 0, 160), nil) != nil {
		t.Error("zero width produced an engine")
	}
	if New(sim)(terminal.RGB888(nil, 4, 4), nil) != nil {
		t.Error("surface smaller than one cell produced an engine")
	}
}

func TestWrite_TextAndNewline(t *testing.T) {
	e, _ := newEngine(t, nil)
	e.Write([]byte("boot\nok"))
	if got := rowText(e, 0, 4); got != "boot" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(e, 1, 2); got != "ok" {
		t.Errorf("row 1 = %q", got)
	}
	if x, y := e.Cursor(); x != 2 || y != 1 {
		t.Errorf("cursor = %d,%d", x, y)
	}
}

func TestWrite_UTF8SplitAcrossWrites(t *testing.T) {
	e, _ := newEngine(t, nil)
	b := []byte("é")
	e.Write(b[:1])
	e.Write(b[1:])
	if r, _ := e.CellAt(0, 0); r != 'é' {
		t.Fatalf("got %q", r)
	}
}

func TestWrite_WideRune(t *testing.T) {
	e, _ := newEngine(t, nil)
	e.Write([]byte("世x"))
	if r, _ := e.CellAt(0, 0); r != '世' {
		t.Fatalf("cell 0 = %q", r)
	}
	if r, _ := e.CellAt(2, 0); r != 'x' {
		t.Fatalf("cell 2 = %q, wide rune should advance two columns", r)
	}
}

func TestWrite_WrapAndScroll(t *testing.T) {
	e, _ := newEngine(t, nil)
	for i := 0; i < 10; i++ {
		e.Write([]byte{byte('0' + i), '\n'})
	}
	// Ten lines plus the trailing newline scroll the first line away
	if got := rowText(e, 0, 1); got != "1" {
		t.Errorf("top row after scroll = %q", got)
	}
	if got := rowText(e, 8, 1); got != "9" {
		t.Errorf("row 8 = %q", got)
	}
	if got := rowText(e, 9, 1); got != " " {
		t.Errorf("bottom row should be blank, got %q", got)
	}

	e.Write([]byte("\x1b[2J\x1b[H"))
	line := make([]byte, 41)
	for i := range line {
		line[i] = 'a'
	}
	line[40] = 'b'
	e.Write(line)
	if r, _ := e.CellAt(0, 1); r != 'b' {
		t.Fatalf("41st column did not wrap, got %q", r)
	}
}

// The console's cursor translation lands text on the intended 0-indexed cell
func TestConsole_MoveCursorPlacement(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	ctx, err := console.New(New(sim), terminal.RGB888(nil, 320, 160), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	ctx.MoveCursor(4, 9)
	ctx.Printf("X")
	eng := ctx.Raw().(*Engine)
	if r, _ := eng.CellAt(4, 9); r != 'X' {
		t.Fatalf("cell (4,9) = %q", r)
	}

	ctx.Clear()
	if r, _ := eng.CellAt(4, 9); r != 0 {
		t.Fatalf("clear left %q", r)
	}
	if x, y := eng.Cursor(); x != 0 || y != 0 {
		t.Fatalf("clear cursor = %d,%d", x, y)
	}
}

func TestConsole_ColorsApplied(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	ctx, err := console.New(New(sim), terminal.RGB888(nil, 320, 160), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	eng := ctx.Raw().(*Engine)

	ctx.SetColor(196, 21)
	ctx.Printf("a")
	ctx.SetColor(46)
	ctx.Printf("b")
	ctx.ResetFormat()
	ctx.Printf("c")

	_, st := eng.CellAt(0, 0)
	fg, bg, _ := st.Decompose()
	if fg != tcell.PaletteColor(196) || bg != tcell.PaletteColor(21) {
		t.Errorf("cell a fg=%v bg=%v", fg, bg)
	}
	_, st = eng.CellAt(1, 0)
	fg, bg, _ = st.Decompose()
	if fg != tcell.PaletteColor(46) || bg != tcell.PaletteColor(21) {
		t.Errorf("cell b fg=%v bg=%v: foreground-only change must keep background", fg, bg)
	}
	_, st = eng.CellAt(2, 0)
	if st != tcell.StyleDefault {
		t.Errorf("cell c style not reset: %v", st)
	}
}

func TestOptions_PaletteOverride(t *testing.T) {
	ansi := [8]uint32{0x000000, 0xaa0000, 0x00aa00, 0xaa5500, 0x0000aa, 0xaa00aa, 0x00aaaa, 0xaaaaaa}
	fg := uint32(0xc0c0c0)
	e, _ := newEngine(t, &terminal.Options{ANSIColours: &ansi, DefaultFg: &fg})

	e.Write([]byte("\x1b[31mr\x1b[0md"))
	_, st := e.CellAt(0, 0)
	if got, _, _ := st.Decompose(); got != tcell.NewHexColor(0xaa0000) {
		t.Errorf("SGR 31 with override = %v", got)
	}
	_, st = e.CellAt(1, 0)
	if got, _, _ := st.Decompose(); got != tcell.NewHexColor(0xc0c0c0) {
		t.Errorf("default fg override = %v", got)
	}
}

func TestFlushRefreshDeinit(t *testing.T) {
	e, _ := newEngine(t, nil)
	e.SetAutoflush(false)
	e.Write([]byte("abc"))
	e.Flush()
	e.FullRefresh()
	e.Deinit()
	e.Deinit()
	e.Write([]byte("ignored"))
	if r, _ := e.CellAt(0, 0); r != 'a' {
		t.Fatalf("grid changed after deinit: %q", r)
	}
}

func TestUnknownSequencesConsumed(t *testing.T) {
	e, _ := newEngine(t, nil)
	e.Write([]byte("\x1b[?25l\x1b[5nA\x1b(B"))
	if got := rowText(e, 0, 2); got != "A " {
		t.Fatalf("row = %q", got)
	}
}

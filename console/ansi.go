// @focus: #console { ansi }
package console

import "math"

// Pre-allocated ANSI fragments (no allocation on the translation path)
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiSGR0  = []byte("\x1b[0m")
	csiFg256 = []byte("\x1b[38;5;") // followed by N m
	csiBg256 = []byte("\x1b[48;5;") // followed by N m
)

// maxSeqLen bounds every sequence encoded here: CSI + two 20-digit ints + separators
const maxSeqLen = 48

// appendInt appends a non-negative decimal without allocation.
// Optimized for terminal values (0-255 common, 0-999 typical max).
func appendInt(b []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(b, byte(n)+'0')
	}
	if n < 100 {
		return append(b, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(b, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(b, buf[i:]...)
}

// appendCursorPos appends CUP for a 0-indexed column x and row y; the wire form is 1-based row;col.
// Coordinates saturate to [0, MaxInt-1] so the 1-based value cannot wrap.
func appendCursorPos(b []byte, x, y int) []byte {
	x = min(max(x, 0), math.MaxInt-1)
	y = min(max(y, 0), math.MaxInt-1)
	b = append(b, csi...)
	b = appendInt(b, y+1)
	b = append(b, ';')
	b = appendInt(b, x+1)
	return append(b, 'H')
}

// appendFg256 appends a 256-color palette foreground SGR
func appendFg256(b []byte, n uint8) []byte {
	b = append(b, csiFg256...)
	b = appendInt(b, int(n))
	return append(b, 'm')
}

// appendBg256 appends a 256-color palette background SGR
func appendBg256(b []byte, n uint8) []byte {
	b = append(b, csiBg256...)
	b = appendInt(b, int(n))
	return append(b, 'm')
}

// @focus: #terminal { ansi }
package terminal

import "io"

// Pre-allocated ANSI sequence fragments (avoid allocations during redraw)
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")

	// Cursor control
	csiCursorShow    = []byte("\x1b[?25h")
	csiCursorColumn0 = []byte("\x1b[G")
	csiCursorDown1   = []byte("\x1b[B")

	// Erasing
	csiEraseLineRight = []byte("\x1b[K")
	csiEraseLine      = []byte("\x1b[2K")

	// DECAWM: Auto-Wrap Mode
	csiAutoWrapOn = []byte("\x1b[?7h")

	// Color prefixes
	csiFg256     = []byte("\x1b[38;5;") // followed by N;m
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiDefaultFg = []byte("\x1b[39m")
)

// ByteWriter is the sink ANSI sequences are written to.
// Satisfied by *bufio.Writer, *bytes.Buffer and *strings.Builder.
type ByteWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w ByteWriter, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorUp moves the cursor up n lines
func writeCursorUp(w ByteWriter, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('A')
}

// writeNextLine moves the cursor to column 0 of the line below
// without emitting a newline, so auto-scroll never shifts the row count
func writeNextLine(w ByteWriter) {
	w.Write(csiCursorColumn0)
	w.Write(csiCursorDown1)
}

// WriteFg writes a foreground color sequence for the given color mode
func WriteFg(w ByteWriter, fg RGB, mode ColorMode) {
	if mode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
		w.WriteByte('m')
		return
	}
	w.Write(csiFg256)
	writeInt(w, int(RGBTo256(fg)))
	w.WriteByte('m')
}

// WriteDefaultFg restores the terminal's default foreground
func WriteDefaultFg(w ByteWriter) {
	w.Write(csiDefaultFg)
}

// @lixen: #focus{sys[term,io,output]}
package terminal

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// Display replaces the previously drawn frame with a new one in place.
// Safe for concurrent use; one redraw runs at a time.
type Display struct {
	mu      sync.Mutex
	backend Backend
	writer  *bufio.Writer
	raw     bool
	rows    int // rows drawn by the previous update
}

// NewDisplay creates a display on b. With raw set, every update runs in raw
// mode and the caller's mode is restored afterwards.
func NewDisplay(b Backend, raw bool) *Display {
	return &Display{
		backend: b,
		writer:  bufio.NewWriterSize(b, 16384),
		raw:     raw,
	}
}

// NewStdoutDisplay creates a raw-mode display on the process's tty
func NewStdoutDisplay() *Display {
	return NewDisplay(NewStdBackend(os.Stdin, os.Stdout), true)
}

// Rows returns the row count of the last drawn frame
func (d *Display) Rows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rows
}

// Reset forgets the previous frame; the next update draws below the cursor
func (d *Display) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = 0
}

// splitRows breaks a frame into display rows, ignoring one trailing newline
func splitRows(frame string) []string {
	frame = strings.TrimSuffix(frame, "\n")
	if frame == "" {
		return nil
	}
	return strings.Split(frame, "\n")
}

// UpdateDisplay draws frame over the previous one.
// Rows left over from a taller previous frame are blanked.
func (d *Display) UpdateDisplay(frame string) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.raw {
		restore, rerr := d.enterRaw()
		if rerr != nil {
			return rerr
		}
		defer func() {
			if rerr := restore(); rerr != nil && err == nil {
				err = rerr
			}
		}()
	}

	rows := splitRows(frame)
	prev := d.rows
	w := d.writer

	if prev > 0 {
		writeCursorUp(w, prev)
	}

	for _, row := range rows {
		w.WriteString(row)
		w.Write(csiEraseLineRight)
		writeNextLine(w)
	}

	surplus := prev - len(rows)
	for i := 0; i < surplus; i++ {
		w.Write(csiEraseLine)
		writeNextLine(w)
	}
	// Park the cursor under the new frame so the next update moves up len(rows)
	writeCursorUp(w, surplus)

	ferr := w.Flush()
	d.rows = len(rows)

	Logger().Debug("display update", "rows", len(rows), "previous", prev, "blanked", max(surplus, 0))

	if ferr != nil {
		// bufio keeps the error sticky; start clean for the next frame
		w.Reset(d.backend)
		return opError("write", ferr)
	}
	return nil
}

// enterRaw switches to raw mode if needed and returns the matching restore
func (d *Display) enterRaw() (func() error, error) {
	wasRaw, err := d.backend.RawMode()
	if err != nil {
		return nil, opError("query raw mode", err)
	}
	if wasRaw {
		return func() error { return nil }, nil
	}
	if err := d.backend.SetRawMode(true); err != nil {
		return nil, opError("enable raw mode", err)
	}
	return func() error {
		return opError("restore mode", d.backend.SetRawMode(false))
	}, nil
}

// MoveCursorUp moves the cursor up n lines without redrawing
func (d *Display) MoveCursorUp(n int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n <= 0 {
		return nil
	}
	writeCursorUp(d.writer, n)
	if err := d.writer.Flush(); err != nil {
		d.writer.Reset(d.backend)
		return opError("move cursor", err)
	}
	return nil
}

// Reserve scrolls n blank lines into view and returns the cursor to the
// first of them, so a following frame of up to n rows does not hit the
// bottom of the screen
func (d *Display) Reserve(n int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n <= 0 {
		return nil
	}
	w := d.writer
	for i := 0; i < n; i++ {
		w.WriteString("\r\n")
	}
	writeCursorUp(w, n)
	if err := w.Flush(); err != nil {
		w.Reset(d.backend)
		return opError("reserve", err)
	}
	return nil
}

package terminal

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeBackend records output and raw mode transitions
type fakeBackend struct {
	mu  sync.Mutex
	out bytes.Buffer
	raw bool

	transitions []bool
	queryErr    error
	setErr      error
	writeErr    error
}

func (f *fakeBackend) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.out.Write(p)
}

func (f *fakeBackend) RawMode() (bool, error) {
	return f.raw, f.queryErr
}

func (f *fakeBackend) SetRawMode(enabled bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.raw = enabled
	f.transitions = append(f.transitions, enabled)
	return nil
}

func (f *fakeBackend) take() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.out.String()
	f.out.Reset()
	return s
}

const (
	up5      = "\x1b[5A"
	nextLine = "\x1b[G\x1b[B"
	eol      = "\x1b[K"
	blank    = "\x1b[2K"
)

func TestUpdateDisplay_FirstFrame(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)

	if err := d.UpdateDisplay("ab\ncd\n"); err != nil {
		t.Fatalf("UpdateDisplay failed: %v", err)
	}

	want := "ab" + eol + nextLine + "cd" + eol + nextLine
	if got := fb.take(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if d.Rows() != 2 {
		t.Errorf("Expected 2 rows, got %d", d.Rows())
	}
}

func TestUpdateDisplay_ShrinkBlanksSurplus(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)

	if err := d.UpdateDisplay("1\n2\n3\n4\n5\n"); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	fb.take()

	if err := d.UpdateDisplay("a\nb\n"); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	got := fb.take()

	if !strings.HasPrefix(got, up5) {
		t.Errorf("Expected cursor up 5 before second frame, got %q", got)
	}
	if n := strings.Count(got, blank); n != 3 {
		t.Errorf("Expected 3 blanked rows, got %d in %q", n, got)
	}

	want := up5 +
		"a" + eol + nextLine +
		"b" + eol + nextLine +
		blank + nextLine + blank + nextLine + blank + nextLine +
		"\x1b[3A"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if d.Rows() != 2 {
		t.Errorf("Expected row count 2 after shrink, got %d", d.Rows())
	}

	// Next frame climbs only over the rows actually drawn
	d.UpdateDisplay("x\n")
	if got := fb.take(); !strings.HasPrefix(got, "\x1b[2A") {
		t.Errorf("Expected cursor up 2, got %q", got)
	}
}

func TestUpdateDisplay_Grow(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)
	d.UpdateDisplay("a\n")
	fb.take()

	d.UpdateDisplay("a\nb\nc\n")
	got := fb.take()
	if !strings.HasPrefix(got, "\x1b[1A") {
		t.Errorf("Expected cursor up 1, got %q", got)
	}
	if strings.Contains(got, blank) {
		t.Errorf("Growing frame should not blank rows: %q", got)
	}
	if d.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", d.Rows())
	}
}

func TestUpdateDisplay_EmptyFrame(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)
	d.UpdateDisplay("a\nb\n")
	fb.take()

	if err := d.UpdateDisplay(""); err != nil {
		t.Fatalf("UpdateDisplay failed: %v", err)
	}
	want := "\x1b[2A" + blank + nextLine + blank + nextLine + "\x1b[2A"
	if got := fb.take(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if d.Rows() != 0 {
		t.Errorf("Expected 0 rows, got %d", d.Rows())
	}
}

func TestUpdateDisplay_NoTrailingNewline(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)
	d.UpdateDisplay("a\nb")
	if d.Rows() != 2 {
		t.Errorf("Expected 2 rows, got %d", d.Rows())
	}
}

func TestUpdateDisplay_RawModeRestored(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, true)

	if err := d.UpdateDisplay("x\n"); err != nil {
		t.Fatalf("UpdateDisplay failed: %v", err)
	}
	if len(fb.transitions) != 2 || !fb.transitions[0] || fb.transitions[1] {
		t.Errorf("Expected raw on then off, got %v", fb.transitions)
	}
	if fb.raw {
		t.Error("Expected cooked mode restored")
	}
}

func TestUpdateDisplay_RawModeLeftAlone(t *testing.T) {
	fb := &fakeBackend{raw: true}
	d := NewDisplay(fb, true)

	if err := d.UpdateDisplay("x\n"); err != nil {
		t.Fatalf("UpdateDisplay failed: %v", err)
	}
	if len(fb.transitions) != 0 {
		t.Errorf("Expected no transitions when already raw, got %v", fb.transitions)
	}
	if !fb.raw {
		t.Error("Expected raw mode kept")
	}
}

func TestUpdateDisplay_RestoredOnWriteError(t *testing.T) {
	boom := errors.New("broken pipe")
	fb := &fakeBackend{writeErr: boom}
	d := NewDisplay(fb, true)

	err := d.UpdateDisplay("x\ny\n")

	var te *TerminalError
	if !errors.As(err, &te) {
		t.Fatalf("Expected *TerminalError, got %v", err)
	}
	if te.Op != "write" {
		t.Errorf("Expected op write, got %q", te.Op)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped write error, got %v", err)
	}
	if fb.raw {
		t.Error("Expected raw mode restored on error path")
	}
	if d.Rows() != 2 {
		t.Errorf("Expected row count updated to 2, got %d", d.Rows())
	}

	// Writer recovers once the backend does
	fb.writeErr = nil
	if err := d.UpdateDisplay("z\n"); err != nil {
		t.Errorf("Expected recovery after write error, got %v", err)
	}
}

func TestUpdateDisplay_EnvironmentErrors(t *testing.T) {
	tests := []struct {
		name string
		fb   *fakeBackend
		op   string
	}{
		{"Query fails", &fakeBackend{queryErr: ErrNotTerminal}, "query raw mode"},
		{"Enable fails", &fakeBackend{setErr: ErrUnsupported}, "enable raw mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay(tt.fb, true)
			err := d.UpdateDisplay("x\n")

			var te *TerminalError
			if !errors.As(err, &te) {
				t.Fatalf("Expected *TerminalError, got %v", err)
			}
			if te.Op != tt.op {
				t.Errorf("Expected op %q, got %q", tt.op, te.Op)
			}
			if tt.fb.out.Len() != 0 {
				t.Errorf("Expected nothing drawn, got %q", tt.fb.out.String())
			}
			if d.Rows() != 0 {
				t.Errorf("Expected row count untouched, got %d", d.Rows())
			}
		})
	}
}

func TestMoveCursorUp(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)

	if err := d.MoveCursorUp(12); err != nil {
		t.Fatalf("MoveCursorUp failed: %v", err)
	}
	if got := fb.take(); got != "\x1b[12A" {
		t.Errorf("Expected cursor up 12, got %q", got)
	}

	d.MoveCursorUp(0)
	if got := fb.take(); got != "" {
		t.Errorf("Expected no output for zero lines, got %q", got)
	}
}

func TestReserve(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)
	if err := d.Reserve(3); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if got := fb.take(); got != "\r\n\r\n\r\n\x1b[3A" {
		t.Errorf("Unexpected reserve output %q", got)
	}
	if d.Rows() != 0 {
		t.Errorf("Reserve must not count as a frame, got %d rows", d.Rows())
	}
}

func TestReset(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)
	d.UpdateDisplay("a\nb\n")
	d.Reset()
	fb.take()

	d.UpdateDisplay("c\n")
	if got := fb.take(); strings.Contains(got, "A") {
		t.Errorf("Expected no cursor up after Reset, got %q", got)
	}
}

func TestUpdateDisplay_ConcurrentFramesDoNotInterleave(t *testing.T) {
	fb := &fakeBackend{}
	d := NewDisplay(fb, false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.UpdateDisplay("abc\ndef\n")
		}()
	}
	wg.Wait()

	// Every update after the first starts with a complete cursor-up of 2
	frame := "abc" + eol + nextLine + "def" + eol + nextLine
	got := fb.take()
	want := frame + strings.Repeat("\x1b[2A"+frame, 15)
	if got != want {
		t.Errorf("Frames interleaved:\n%q", got)
	}
}

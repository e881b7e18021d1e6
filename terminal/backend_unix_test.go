//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package terminal

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestTermios_CookedIsNotRaw(t *testing.T) {
	var tio unix.Termios
	if !isRaw(&tio) {
		t.Fatal("Expected zeroed termios to count as raw")
	}

	setCooked(&tio)
	if isRaw(&tio) {
		t.Error("Expected cooked termios not to count as raw")
	}
	if tio.Iflag&unix.ICRNL == 0 {
		t.Error("Expected ICRNL set")
	}
	if tio.Oflag&unix.OPOST == 0 {
		t.Error("Expected OPOST set")
	}
	if tio.Lflag&unix.ISIG == 0 {
		t.Error("Expected ISIG set")
	}
}

func TestTermios_EchoAloneIsNotRaw(t *testing.T) {
	tio := unix.Termios{Lflag: unix.ECHO}
	if isRaw(&tio) {
		t.Error("Expected echo without canonical mode not to count as raw")
	}
}

func TestNewStdBackend_NotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()

	b := NewStdBackend(r, w)
	if _, err := b.RawMode(); err != ErrNotTerminal {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
	if err := b.SetRawMode(true); err != ErrNotTerminal {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
	if err := b.SetRawMode(false); err != nil {
		t.Errorf("Expected restore without saved state to be a no-op, got %v", err)
	}
}

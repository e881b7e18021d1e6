//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	saved *term.State
}

// NewStdBackend creates a backend reading tty state from in and writing to out
func NewStdBackend(in, out *os.File) Backend {
	return &unixBackend{
		in:   in,
		out:  out,
		inFd: int(in.Fd()),
	}
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// RawMode reports raw when the tty has canonical input and echo off
func (b *unixBackend) RawMode() (bool, error) {
	if !term.IsTerminal(b.inFd) {
		return false, ErrNotTerminal
	}
	t, err := unix.IoctlGetTermios(b.inFd, ioctlReadTermios)
	if err != nil {
		return false, err
	}
	return isRaw(t), nil
}

func (b *unixBackend) SetRawMode(enabled bool) error {
	if enabled {
		if b.saved != nil {
			return nil
		}
		if !term.IsTerminal(b.inFd) {
			return ErrNotTerminal
		}
		old, err := term.MakeRaw(b.inFd)
		if err != nil {
			return err
		}
		b.saved = old
		return nil
	}

	if b.saved == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.saved)
	b.saved = nil
	return err
}

// isRaw reports whether canonical input and echo are both off
func isRaw(t *unix.Termios) bool {
	return t.Lflag&(unix.ICANON|unix.ECHO) == 0
}

// setCooked turns back on the flags term.MakeRaw clears that matter for
// a usable shell: line editing, echo, signals and output post-processing
func setCooked(t *unix.Termios) {
	t.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Iflag |= unix.ICRNL
	t.Oflag |= unix.OPOST
}

// resetTerminalMode puts the controlling tty back into cooked mode without
// a saved state. It opens /dev/tty so redirected stdin does not matter.
// Errors are ignored; it only runs while recovering from a crash.
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return
	}
	setCooked(t)
	_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, t)
}

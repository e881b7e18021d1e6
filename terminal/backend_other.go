//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package terminal

import "os"

type plainBackend struct {
	out *os.File
}

// NewStdBackend creates an output-only backend; raw mode is unavailable
func NewStdBackend(_, out *os.File) Backend {
	return &plainBackend{out: out}
}

func (b *plainBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *plainBackend) RawMode() (bool, error) {
	return false, ErrUnsupported
}

func (b *plainBackend) SetRawMode(bool) error {
	return ErrUnsupported
}

func resetTerminalMode() {}

package terminal

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotTerminal is returned when raw mode is requested on a non-tty
	ErrNotTerminal = errors.New("not a terminal")

	// ErrUnsupported is returned by backends without raw mode support
	ErrUnsupported = errors.New("raw mode not supported on this platform")
)

// TerminalError reports a failed terminal operation.
// Callers seeing it can fall back to plain, non-redrawing output.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// opError wraps err with a stack trace under the given operation
func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TerminalError{Op: op, Err: errors.WithStack(err)}
}

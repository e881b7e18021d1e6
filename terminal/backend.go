package terminal

import "io"

// Backend is the terminal the display draws on.
// Cursor movement is expressed as ANSI written through Write; raw mode is
// process-wide tty state the backend queries and toggles.
type Backend interface {
	io.Writer

	// RawMode reports whether the terminal is currently in raw mode
	RawMode() (bool, error)

	// SetRawMode enters raw mode, or restores the mode saved when entering it
	SetRawMode(enabled bool) error
}

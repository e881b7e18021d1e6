// @focus: #sys { term }
// Package terminal redraws text frames in place on an ANSI terminal.
//
// Features:
//   - In-place frame replacement with row accounting (no scrollback growth)
//   - Raw mode saved and restored around every redraw
//   - True color (24-bit) and 256-color foreground sequences
//   - Pluggable Backend so tests capture output instead of a real tty
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

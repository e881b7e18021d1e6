// Package screen draws plot frames into a fixed region of a tcell screen.
//
// A Region keeps the extent of the previous frame so a smaller frame clears
// what the larger one left behind, the same way terminal.Display does for
// inline output.
package screen

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termplot/glyph"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Region is a redraw target anchored at (X, Y) on a tcell screen
type Region struct {
	mu     sync.Mutex
	screen tcell.Screen
	x, y   int
	style  tcell.Style

	// Extent of the previous frame
	rows  int
	width []int
}

// NewRegion creates a region with its top-left corner at (x, y)
func NewRegion(s tcell.Screen, x, y int) *Region {
	return &Region{
		screen: s,
		x:      x,
		y:      y,
		style:  tcell.StyleDefault,
	}
}

// SetStyle sets the style used for plain text frames
func (r *Region) SetStyle(st tcell.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = st
}

// Rows returns the row count of the last drawn frame
func (r *Region) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// Update draws a text frame, one line per row, and shows the screen
func (r *Region) Update(frame string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame = strings.TrimSuffix(frame, "\n")
	var lines []string
	if frame != "" {
		lines = strings.Split(frame, "\n")
	}

	widths := make([]int, len(lines))
	for row, line := range lines {
		widths[row] = r.drawLine(row, line)
	}
	r.finish(widths)
}

// UpdateColor draws full-block color pixels, one cell per pixel
func (r *Region) UpdateColor(rows [][]render.ColorPixel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	widths := make([]int, len(rows))
	for row, pixels := range rows {
		for col, p := range pixels {
			if p.On {
				r.screen.SetContent(r.x+col, r.y+row, glyph.FullBlock, nil, colorStyle(p.Color))
			} else {
				r.screen.SetContent(r.x+col, r.y+row, ' ', nil, tcell.StyleDefault)
			}
		}
		widths[row] = len(pixels)
	}
	r.finish(widths)
}

// drawLine places a line's runes by display width and returns the width used
func (r *Region) drawLine(row int, line string) int {
	col := 0
	for _, ch := range line {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(r.x+col, r.y+row, ch, nil, r.style)
		col += w
	}
	return col
}

// finish blanks leftovers of the previous frame, records the new extent and shows
func (r *Region) finish(widths []int) {
	for row, prevW := range r.width {
		start := 0
		if row < len(widths) {
			start = widths[row]
		}
		for col := start; col < prevW; col++ {
			r.screen.SetContent(r.x+col, r.y+row, ' ', nil, tcell.StyleDefault)
		}
	}

	terminal.Logger().Debug("region update", "rows", len(widths), "previous", r.rows)

	r.rows = len(widths)
	r.width = widths
	r.screen.Show()
}

// colorStyle maps a plot color to a tcell foreground style
func colorStyle(c terminal.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

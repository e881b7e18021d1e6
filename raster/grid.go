// Package raster samples functions and images into boolean pixel grids.
//
// A Grid is row-major with row 0 at the top. Rows are allocated lazily and may
// differ in length; every read outside the allocated cells is an off pixel.
package raster

import "strings"

// Grid is a possibly sparse boolean pixel image
type Grid struct {
	rows [][]bool
}

// NewGrid creates a dense grid of height rows, each width pixels wide
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	rows := make([][]bool, height)
	for y := range rows {
		rows[y] = make([]bool, width)
	}
	return &Grid{rows: rows}
}

// FromRows wraps existing rows without copying
func FromRows(rows [][]bool) *Grid {
	return &Grid{rows: rows}
}

// Height returns the number of pixel rows
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the logical width: the longest allocated row
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.rows {
		w = max(w, len(row))
	}
	return w
}

// At reports whether pixel (x, y) is on. Out of range reads are off.
func (g *Grid) At(x, y int) bool {
	if y < 0 || y >= len(g.rows) || x < 0 {
		return false
	}
	row := g.rows[y]
	if x >= len(row) {
		return false
	}
	return row[x]
}

// Set writes pixel (x, y), growing the grid as needed.
// Negative coordinates are ignored. Clearing an unallocated pixel allocates nothing.
func (g *Grid) Set(x, y int, on bool) {
	if x < 0 || y < 0 {
		return
	}
	if y >= len(g.rows) {
		if !on {
			return
		}
		g.rows = append(g.rows, make([][]bool, y+1-len(g.rows))...)
	}
	row := g.rows[y]
	if x >= len(row) {
		if !on {
			return
		}
		grown := make([]bool, x+1)
		copy(grown, row)
		row = grown
		g.rows[y] = row
	}
	row[x] = on
}

// Rows exposes the underlying rows
func (g *Grid) Rows() [][]bool {
	return g.rows
}

// FlipVertical mirrors the grid top to bottom
func (g *Grid) FlipVertical() {
	for i, j := 0, len(g.rows)-1; i < j; i, j = i+1, j-1 {
		g.rows[i], g.rows[j] = g.rows[j], g.rows[i]
	}
}

// String draws the grid with '#' for on and '.' for off, one line per row
func (g *Grid) String() string {
	w := g.Width()
	var sb strings.Builder
	sb.Grow((w + 1) * len(g.rows))
	for y := range g.rows {
		for x := 0; x < w; x++ {
			if g.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

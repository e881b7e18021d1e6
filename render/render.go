// Package render turns pixel grids into terminal text.
//
// A grid is scanned in character cells row by row; each cell's pixels are
// packed into a bit index and looked up in a glyph table. Every cell row ends
// with a newline.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/termplot/glyph"
	"github.com/lixenwraith/termplot/raster"
)

// ErrUnsupportedShape is returned for shapes without a glyph table
var ErrUnsupportedShape = errors.New("render: no glyph table for shape")

// glyphFunc returns the table lookup for s
func glyphFunc(s Shape) (func(uint8) (rune, error), error) {
	switch s {
	case Sextant:
		return glyph.Sextant, nil
	case Quadrant:
		return glyph.Quadrant, nil
	case Pixel:
		return func(b uint8) (rune, error) { return glyph.Pixel(b&1 != 0), nil }, nil
	}
	return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedShape, s.W, s.H)
}

// ParseShape resolves a mode name to its shape
func ParseShape(name string) (Shape, error) {
	switch name {
	case "", "sextant":
		return Sextant, nil
	case "quadrant":
		return Quadrant, nil
	case "block", "full", "fullblock":
		return Pixel, nil
	}
	return Shape{}, fmt.Errorf("unknown render mode %q", name)
}

// RenderShape renders g with one glyph per s-sized cell.
// An empty grid renders as the empty string.
func RenderShape(g *raster.Grid, s Shape) (string, error) {
	lookup, err := glyphFunc(s)
	if err != nil {
		return "", err
	}

	cols, rows := s.Cells(g)
	if cols == 0 || rows == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(rows * (cols*4 + 1))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, err := lookup(Pack(g, s, col, row))
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Render draws g with sextant glyphs, 2x3 pixels per character
func Render(g *raster.Grid) string {
	out, err := RenderShape(g, Sextant)
	if err != nil {
		// Sextant indices are 6-bit, so the table always covers them
		panic(err)
	}
	return out
}

// RenderFullBlock draws g with one character per pixel
func RenderFullBlock(g *raster.Grid) string {
	w := g.Width()
	if w == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(g.Height() * (w*3 + 1))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < w; x++ {
			sb.WriteRune(glyph.Pixel(g.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

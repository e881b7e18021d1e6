package render

import (
	"strings"

	"github.com/lixenwraith/termplot/glyph"
	"github.com/lixenwraith/termplot/raster"
	"github.com/lixenwraith/termplot/terminal"
)

// ColorPixel is a full-block pixel that is either unset or drawn in Color
type ColorPixel struct {
	Color terminal.RGB
	On    bool
}

// Colored returns a set pixel of color c
func Colored(c terminal.RGB) ColorPixel {
	return ColorPixel{Color: c, On: true}
}

// Tint converts a boolean grid to color pixels of a single color
func Tint(g *raster.Grid, c terminal.RGB) [][]ColorPixel {
	w := g.Width()
	rows := make([][]ColorPixel, g.Height())
	for y := range rows {
		rows[y] = make([]ColorPixel, w)
		for x := 0; x < w; x++ {
			if g.At(x, y) {
				rows[y][x] = Colored(c)
			}
		}
	}
	return rows
}

// RenderColor draws one full block per set pixel and a space per unset one.
// A foreground sequence is written only where a set pixel's color differs
// from the pixel before it; unset pixels break the run. Rows shorter than the
// widest are padded with unset pixels.
func RenderColor(rows [][]ColorPixel, mode terminal.ColorMode) string {
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	if w == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(rows) * (w*4 + 1))

	var prev ColorPixel
	havePrev := false
	emitted := false

	for y, row := range rows {
		for x := 0; x < w; x++ {
			var p ColorPixel
			if x < len(row) {
				p = row[x]
			}

			if !p.On {
				sb.WriteByte(' ')
			} else {
				if !havePrev || !prev.On || prev.Color != p.Color {
					terminal.WriteFg(&sb, p.Color, mode)
					emitted = true
				}
				sb.WriteRune(glyph.FullBlock)
			}
			prev = p
			havePrev = true
		}
		// Reset before the final newline so the frame keeps its row count
		if y == len(rows)-1 && emitted {
			terminal.WriteDefaultFg(&sb)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

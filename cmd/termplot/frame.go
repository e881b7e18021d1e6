package main

import (
	"strings"

	"github.com/lixenwraith/termplot/raster"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// style is everything about a frame's output that is fixed for the run
type style struct {
	shape   render.Shape
	fg      terminal.RGB
	colored bool
	mode    terminal.ColorMode
}

// drawGrid samples src at time t onto a grid described by plot
func drawGrid(plot raster.Plot, src source, t float64) (*raster.Grid, error) {
	f, x, err := src.frame(t, plot.Width)
	if err != nil {
		return nil, err
	}
	plot.X = x
	return plot.Draw(f)
}

// renderText renders g as terminal text in the given style.
// Block mode colors each pixel; other shapes color the whole frame and reset
// the foreground before the final newline so the row count is unchanged.
func renderText(g *raster.Grid, st style) (string, error) {
	if st.colored && st.shape == render.Pixel {
		return render.RenderColor(render.Tint(g, st.fg), st.mode), nil
	}

	body, err := render.RenderShape(g, st.shape)
	if err != nil || !st.colored || body == "" {
		return body, err
	}

	var sb strings.Builder
	terminal.WriteFg(&sb, st.fg, st.mode)
	sb.WriteString(strings.TrimSuffix(body, "\n"))
	terminal.WriteDefaultFg(&sb)
	sb.WriteByte('\n')
	return sb.String(), nil
}

// cellRows returns the number of text rows plot renders to with shape s
func cellRows(plot raster.Plot, s render.Shape) int {
	return (plot.Rows() + s.H - 1) / s.H
}

package main

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/termplot/expr"
	"github.com/lixenwraith/termplot/raster"
	"github.com/lixenwraith/termplot/waveform"
)

// source produces the function drawn in one frame and the x range it covers.
// n is the number of pixel columns the frame will be sampled at.
type source interface {
	frame(t float64, n int) (raster.Func, raster.Range, error)
	close()
}

// exprSource evaluates a Lua expression with t advanced every frame
type exprSource struct {
	e *expr.Expr
	x raster.Range
}

func newExprSource(src string, x raster.Range) (*exprSource, error) {
	e, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	// Func hides evaluation errors as NaN; surface them once up front
	if _, err := e.Eval(x.Start); err != nil {
		e.Close()
		return nil, err
	}
	return &exprSource{e: e, x: x}, nil
}

func (s *exprSource) frame(t float64, _ int) (raster.Func, raster.Range, error) {
	s.e.SetTime(t)
	return s.e.Func(), s.x, nil
}

func (s *exprSource) close() {
	s.e.Close()
}

// toneSource draws consecutive windows of a sine tone, so the wave scrolls
type toneSource struct {
	stream beep.Streamer
}

func newToneSource(freq float64, rate int) (*toneSource, error) {
	st, err := generators.SineTone(beep.SampleRate(rate), freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	return &toneSource{stream: st}, nil
}

func (s *toneSource) frame(_ float64, n int) (raster.Func, raster.Range, error) {
	w, err := waveform.Sample(s.stream, n)
	if err != nil {
		return nil, raster.Range{}, err
	}
	return w.Func(), w.Domain(), nil
}

func (s *toneSource) close() {}

// Package waveform captures audio streams as plottable functions.
package waveform

import (
	"errors"
	"fmt"
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/termplot/raster"
)

// ErrNoSamples is returned when a streamer yields nothing
var ErrNoSamples = errors.New("waveform: streamer produced no samples")

// Wave is a captured mono sample buffer
type Wave struct {
	samples []float64
}

// Sample reads up to n frames from s and keeps the left channel
func Sample(s beep.Streamer, n int) (*Wave, error) {
	if n <= 0 {
		return nil, fmt.Errorf("waveform: sample count must be positive, got %d", n)
	}

	buf := make([][2]float64, 512)
	out := make([]float64, 0, n)
	for len(out) < n {
		want := min(len(buf), n-len(out))
		got, ok := s.Stream(buf[:want])
		for i := 0; i < got; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	return &Wave{samples: out}, nil
}

// Len returns the number of captured samples
func (w *Wave) Len() int {
	return len(w.samples)
}

// At returns the sample value at fractional index x, linearly interpolated
// and held at the first and last sample outside the buffer
func (w *Wave) At(x float64) float64 {
	last := len(w.samples) - 1
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x <= 0:
		return w.samples[0]
	case x >= float64(last):
		return w.samples[last]
	}
	i := int(x)
	frac := x - float64(i)
	return w.samples[i]*(1-frac) + w.samples[i+1]*frac
}

// Func exposes the wave as a function of sample index
func (w *Wave) Func() raster.Func {
	return w.At
}

// Domain returns the x range covering every sample
func (w *Wave) Domain() raster.Range {
	return raster.Range{Start: 0, End: float64(len(w.samples))}
}

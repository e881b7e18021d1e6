package raster

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTooFewColumns = errors.New("raster: function plot needs at least 2 columns")
	ErrTooFewRows    = errors.New("raster: function plot needs at least 1 row")
	ErrEmptyRange    = errors.New("raster: y range has zero height")
	ErrInfiniteRange = errors.New("raster: range bounds must be finite")
)

// Func is a single-valued function of one variable
type Func func(x float64) float64

// Range is the half-open interval [Start, End)
type Range struct {
	Start, End float64
}

// Span returns End - Start
func (r Range) Span() float64 {
	return r.End - r.Start
}

// Finite reports whether both bounds are finite numbers
func (r Range) Finite() bool {
	return !math.IsNaN(r.Start) && !math.IsInf(r.Start, 0) &&
		!math.IsNaN(r.End) && !math.IsInf(r.End, 0)
}

// Fraction returns v's position in the range, 0 at Start and 1 at End.
// Bounds are halved first so the span of any finite range stays finite.
func (r Range) Fraction(v float64) float64 {
	return (v/2 - r.Start/2) / (r.End/2 - r.Start/2)
}

// Clamp limits v to [Start, End], whichever way round the bounds are
func (r Range) Clamp(v float64) float64 {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// Rounding selects how sampled values map onto pixel rows
type Rounding uint8

const (
	// RoundExclusive produces Height rows: the range is clamped and scaled
	// onto rows 0..Height-1
	RoundExclusive Rounding = iota
	// RoundInclusive produces Height+1 rows: the range is scaled onto rows
	// 0..Height and the rounded row index is limited with min/max
	RoundInclusive
)

// String returns human-readable rounding name
func (r Rounding) String() string {
	switch r {
	case RoundExclusive:
		return "exclusive"
	case RoundInclusive:
		return "inclusive"
	default:
		return "unknown"
	}
}

// ParseRounding resolves a rounding name
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "exclusive":
		return RoundExclusive, nil
	case "inclusive":
		return RoundInclusive, nil
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

// Plot describes how a function is sampled onto a grid
type Plot struct {
	X, Y     Range
	Width    int // pixel columns, one sample each
	Height   int // pixel rows (one more with RoundInclusive)
	Rounding Rounding
	FlipY    bool // draw larger y values higher up
}

// Rows returns the height of the grid Draw produces
func (p Plot) Rows() int {
	if p.Rounding == RoundInclusive {
		return p.Height + 1
	}
	return p.Height
}

// Validate checks the sampling preconditions
func (p Plot) Validate() error {
	if p.Width < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewColumns, p.Width)
	}
	if p.Height < 1 {
		return fmt.Errorf("%w: got %d", ErrTooFewRows, p.Height)
	}
	if !p.X.Finite() {
		return fmt.Errorf("%w: x [%g, %g)", ErrInfiniteRange, p.X.Start, p.X.End)
	}
	if !p.Y.Finite() {
		return fmt.Errorf("%w: y [%g, %g)", ErrInfiniteRange, p.Y.Start, p.Y.End)
	}
	if p.Y.Start == p.Y.End {
		return fmt.Errorf("%w: [%g, %g)", ErrEmptyRange, p.Y.Start, p.Y.End)
	}
	return nil
}

// row maps a sample to its pixel row, always within [0, Rows())
func (p Plot) row(y float64) int {
	if math.IsNaN(y) {
		y = p.Y.Start
	}
	var r float64
	if p.Rounding == RoundInclusive {
		r = math.Round(p.Y.Fraction(y) * float64(p.Height))
	} else {
		r = math.Round(p.Y.Fraction(p.Y.Clamp(y)) * float64(p.Height-1))
	}
	// Subnormal spans can still divide to NaN
	if math.IsNaN(r) {
		return 0
	}
	return int(math.Min(math.Max(r, 0), float64(p.Rows()-1)))
}

// Draw samples f once per column and joins consecutive samples with
// vertical runs so steep sections stay connected
func (p Plot) Draw(f Func) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := NewGrid(p.Width, p.Rows())
	samples := make([]int, p.Width)
	step := p.X.Span() / float64(p.Width)

	for i := range samples {
		r := p.row(f(float64(i)*step + p.X.Start))
		samples[i] = r
		g.rows[r][i] = true
	}

	// Interior columns only: fill toward the previous sample when it lies
	// below, otherwise toward the next one. Ranges are half-open.
	for i := 1; i < p.Width-1; i++ {
		from, to := samples[i], samples[i+1]
		if samples[i-1] > samples[i] {
			to = samples[i-1]
		}
		for y := from; y < to; y++ {
			g.rows[y][i] = true
		}
	}

	if p.FlipY {
		g.FlipVertical()
	}
	return g, nil
}

// MustDraw is Draw for plots whose parameters are known to be valid
func (p Plot) MustDraw(f Func) *Grid {
	g, err := p.Draw(f)
	if err != nil {
		panic(err)
	}
	return g
}

// DrawFunction samples f over x and y into a grid of yPixels rows
// and xPixels columns using RoundExclusive
func DrawFunction(x, y Range, xPixels, yPixels int, f Func) (*Grid, error) {
	return Plot{X: x, Y: y, Width: xPixels, Height: yPixels}.Draw(f)
}

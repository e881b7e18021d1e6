package render

import (
	"fmt"

	"github.com/lixenwraith/termplot/raster"
)

// Shape is the pixel window packed into one character cell
type Shape struct {
	W, H int
}

var (
	Sextant  = Shape{W: 2, H: 3} // 6 bits, U+1FB00 sextants
	Quadrant = Shape{W: 2, H: 2} // 4 bits, U+2580 quadrants
	Pixel    = Shape{W: 1, H: 1} // 1 bit, full block or space
)

// Bits returns the number of pixels in the window
func (s Shape) Bits() int {
	return s.W * s.H
}

// String returns the shape's mode name
func (s Shape) String() string {
	switch s {
	case Sextant:
		return "sextant"
	case Quadrant:
		return "quadrant"
	case Pixel:
		return "block"
	default:
		return "unknown"
	}
}

// Cells returns how many character columns and rows cover g
func (s Shape) Cells(g *raster.Grid) (cols, rows int) {
	return ceilDiv(g.Width(), s.W), ceilDiv(g.Height(), s.H)
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// MaxBits is the largest window Pack can encode
const MaxBits = 8

// Pack encodes the window at character cell (col, row) as a bit index.
// Bit k is the pixel at window row k/W, column k%W; pixels missing from the
// grid count as off. Panics if s has more than MaxBits pixels.
func Pack(g *raster.Grid, s Shape, col, row int) uint8 {
	if s.Bits() > MaxBits {
		panic(fmt.Sprintf("render: %dx%d window does not fit in %d bits", s.W, s.H, MaxBits))
	}
	var bits uint8
	x0, y0 := col*s.W, row*s.H
	for k := 0; k < s.Bits(); k++ {
		if g.At(x0+k%s.W, y0+k/s.W) {
			bits |= 1 << k
		}
	}
	return bits
}

// Package glyph maps packed pixel blocks to the Unicode characters that draw them.
//
// Two tables are provided:
//   - Sextant: 2x3 blocks from the Symbols for Legacy Computing range (U+1FB00)
//   - Quadrant: 2x2 blocks from the Block Elements range (U+2580)
//
// Bit order is row-major inside the block: bit k is the pixel at row k/2,
// column k%2. A set bit is a drawn pixel.
package glyph

import "fmt"

// Pre-existing block elements the sextant range does not duplicate
const (
	Space     = ' '
	LeftHalf  = '▌'
	RightHalf = '▐'
	FullBlock = '█'
)

const (
	// SextantBase is the codepoint of BLOCK SEXTANT-1
	SextantBase = 0x1FB00

	// SextantCount is the number of 2x3 patterns
	SextantCount = 64

	// QuadrantCount is the number of 2x2 patterns
	QuadrantCount = 16
)

// IndexError reports a block index outside its glyph table
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("glyph index %d outside table of %d entries", e.Index, e.Size)
}

var sextantChars [SextantCount]rune

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR
var QuadrantChars = [QuadrantCount]rune{
	' ', // 0000
	'▘', // 0001 upper-left
	'▝', // 0010 upper-right
	'▀', // 0011 upper half
	'▖', // 0100 lower-left
	'▌', // 0101 left half
	'▞', // 0110 anti-diagonal
	'▛', // 0111
	'▗', // 1000 lower-right
	'▚', // 1001 diagonal
	'▐', // 1010 right half
	'▜', // 1011
	'▄', // 1100 lower half
	'▙', // 1101
	'▟', // 1110
	'█', // 1111
}

func init() {
	for i := range sextantChars {
		sextantChars[i] = sextantRune(i)
	}
}

// sextantRune computes the glyph for a 6-bit pattern.
// The four patterns that already exist as block elements were left out of the
// sextant range, so every later pattern sits lower by the number skipped so far.
func sextantRune(n int) rune {
	switch n {
	case 0:
		return Space
	case 21:
		return LeftHalf
	case 42:
		return RightHalf
	case 63:
		return FullBlock
	}
	return rune(SextantBase + n - sextantOffset(n))
}

func sextantOffset(n int) int {
	switch {
	case n < 21:
		return 1
	case n < 42:
		return 2
	default:
		return 3
	}
}

// Sextant returns the character drawing the 2x3 pattern index
func Sextant(index uint8) (rune, error) {
	if int(index) >= SextantCount {
		return 0, &IndexError{Index: int(index), Size: SextantCount}
	}
	return sextantChars[index], nil
}

// MustSextant is Sextant for indices already known to be in range.
// It panics with an *IndexError otherwise.
func MustSextant(index uint8) rune {
	r, err := Sextant(index)
	if err != nil {
		panic(err)
	}
	return r
}

// Quadrant returns the character drawing the 2x2 pattern index
func Quadrant(index uint8) (rune, error) {
	if int(index) >= QuadrantCount {
		return 0, &IndexError{Index: int(index), Size: QuadrantCount}
	}
	return QuadrantChars[index], nil
}

// Pixel returns FullBlock for a set pixel and Space otherwise
func Pixel(on bool) rune {
	if on {
		return FullBlock
	}
	return Space
}

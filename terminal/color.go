package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves "auto", "truecolor" or "256".
// "auto" and "" read the hints terminal emulators leave in the environment.
func ParseColorMode(s string) (ColorMode, error) {
	return parseColorMode(s, os.Getenv)
}

// trueColorHints lists environment variables that announce 24-bit color.
// An empty marker means the variable only has to be set.
var trueColorHints = []struct{ env, marker string }{
	{"COLORTERM", "truecolor"},
	{"COLORTERM", "24bit"},
	{"TERM", "truecolor"},
	{"TERM", "24bit"},
	{"TERM", "direct"},
	{"KITTY_WINDOW_ID", ""},
	{"KONSOLE_VERSION", ""},
	{"ITERM_SESSION_ID", ""},
	{"ALACRITTY_WINDOW_ID", ""},
	{"WEZTERM_PANE", ""},
}

func parseColorMode(s string, getenv func(string) string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		for _, h := range trueColorHints {
			if v := strings.ToLower(getenv(h.env)); v != "" && strings.Contains(v, h.marker) {
				return ColorModeTrueColor, nil
			}
		}
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Named colors for plot palettes
var (
	Black  = RGB{0, 0, 0}
	White  = RGB{255, 255, 255}
	Red    = RGB{255, 0, 0}
	Orange = RGB{255, 165, 0}
	Yellow = RGB{255, 255, 0}
	Green  = RGB{0, 255, 0}
	Cyan   = RGB{0, 255, 255}
	Blue   = RGB{0, 0, 255}
)

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B

	// Grayscale ramp: 232-255 maps to luminance 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := min(232+(gray-8)/10, 255)

		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cubeDist := abs(int(r)-int(cubeValues[cubeIndex[r]])) +
			abs(int(g)-int(cubeValues[cubeIndex[g]])) +
			abs(int(b)-int(cubeValues[cubeIndex[b]]))

		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

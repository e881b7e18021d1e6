// Package config loads plot settings from TOML.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termplot/raster"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Config is the complete plot configuration
type Config struct {
	Expr      string          `toml:"expr"`
	Plot      PlotConfig      `toml:"plot"`
	Render    RenderConfig    `toml:"render"`
	Animation AnimationConfig `toml:"animation"`
}

// PlotConfig controls sampling
type PlotConfig struct {
	X        [2]float64 `toml:"x"`
	Y        [2]float64 `toml:"y"`
	Width    int        `toml:"width"`  // pixel columns, 0 = terminal width
	Height   int        `toml:"height"` // pixel rows
	Rounding string     `toml:"rounding"`
	FlipY    bool       `toml:"flip_y"`
}

// RenderConfig controls glyph output
type RenderConfig struct {
	Mode      string `toml:"mode"`       // sextant, quadrant or block
	Color     string `toml:"color"`      // "#rrggbb"; block mode only, empty for monochrome
	ColorMode string `toml:"color_mode"` // auto, truecolor or 256
}

// AnimationConfig controls the redraw loop
type AnimationConfig struct {
	Interval string  `toml:"interval"`  // Go duration, e.g. "100ms"
	TimeStep float64 `toml:"time_step"` // added to t every frame
	Frames   int     `toml:"frames"`    // 0 runs until interrupted
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Expr: "sin(4*x + t/8)",
		Plot: PlotConfig{
			X:      [2]float64{3, 40},
			Y:      [2]float64{-1, 1},
			Height: 12,
		},
		Render: RenderConfig{
			Mode:      "sextant",
			ColorMode: "auto",
		},
		Animation: AnimationConfig{
			Interval: "300ms",
			TimeStep: 1,
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that can be checked without a terminal
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Expr) == "" {
		return fmt.Errorf("config: expr is empty")
	}
	if c.Plot.Width != 0 && c.Plot.Width < 2 {
		return fmt.Errorf("config: plot.width must be 0 or at least 2, got %d", c.Plot.Width)
	}
	if c.Plot.Height < 1 {
		return fmt.Errorf("config: plot.height must be positive, got %d", c.Plot.Height)
	}
	if err := checkRange("plot.x", c.Plot.X); err != nil {
		return err
	}
	if err := checkRange("plot.y", c.Plot.Y); err != nil {
		return err
	}
	if c.Plot.Y[0] == c.Plot.Y[1] {
		return fmt.Errorf("config: plot.y range is empty")
	}
	if _, err := raster.ParseRounding(c.Plot.Rounding); err != nil {
		return fmt.Errorf("config: plot.rounding: %w", err)
	}
	if _, err := render.ParseShape(c.Render.Mode); err != nil {
		return fmt.Errorf("config: render.mode: %w", err)
	}
	if _, _, err := c.Foreground(); err != nil {
		return err
	}
	if _, err := terminal.ParseColorMode(c.Render.ColorMode); err != nil {
		return fmt.Errorf("config: render.color_mode: %w", err)
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	if c.Animation.Frames < 0 {
		return fmt.Errorf("config: animation.frames must not be negative")
	}
	return nil
}

func checkRange(name string, r [2]float64) error {
	rng := raster.Range{Start: r[0], End: r[1]}
	if !rng.Finite() {
		return fmt.Errorf("config: %s bounds must be finite, got [%g, %g]", name, r[0], r[1])
	}
	return nil
}

// Sampling builds the plot description; width is used when Plot.Width is 0
func (c *Config) Sampling(width int) raster.Plot {
	if c.Plot.Width > 0 {
		width = c.Plot.Width
	}
	rounding, _ := raster.ParseRounding(c.Plot.Rounding)
	return raster.Plot{
		X:        raster.Range{Start: c.Plot.X[0], End: c.Plot.X[1]},
		Y:        raster.Range{Start: c.Plot.Y[0], End: c.Plot.Y[1]},
		Width:    width,
		Height:   c.Plot.Height,
		Rounding: rounding,
		FlipY:    c.Plot.FlipY,
	}
}

// Shape returns the render shape for the configured mode
func (c *Config) Shape() render.Shape {
	s, err := render.ParseShape(c.Render.Mode)
	if err != nil {
		return render.Sextant
	}
	return s
}

// Foreground parses the configured color; ok is false when none is set
func (c *Config) Foreground() (rgb terminal.RGB, ok bool, err error) {
	if c.Render.Color == "" {
		return terminal.RGB{}, false, nil
	}
	col, err := colorful.Hex(c.Render.Color)
	if err != nil {
		return terminal.RGB{}, false, fmt.Errorf("config: render.color: %w", err)
	}
	r, g, b := col.RGB255()
	return terminal.RGB{R: r, G: g, B: b}, true, nil
}

// Interval returns the frame interval
func (c *Config) Interval() (time.Duration, error) {
	if c.Animation.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Animation.Interval)
	if err != nil {
		return 0, fmt.Errorf("config: animation.interval: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: animation.interval must not be negative")
	}
	return d, nil
}

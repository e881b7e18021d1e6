package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/termplot/config"
	"github.com/lixenwraith/termplot/raster"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/screen"
	"github.com/lixenwraith/termplot/terminal"
)

var (
	configFlag     = flag.String("config", "", "TOML config file")
	exprFlag       = flag.String("expr", "", "Lua expression over x and t")
	modeFlag       = flag.String("mode", "", "Render mode: sextant, quadrant, block")
	fgFlag         = flag.String("fg", "", "Plot color as #rrggbb")
	colorModeFlag  = flag.String("color", "", "Color mode: auto, truecolor, 256")
	widthFlag      = flag.Int("width", 0, "Pixel columns (0 = terminal width)")
	heightFlag     = flag.Int("height", 0, "Pixel rows")
	framesFlag     = flag.Int("frames", 0, "Frames to draw (0 = until interrupted)")
	intervalFlag   = flag.Duration("interval", 0, "Time between frames")
	flipFlag       = flag.Bool("flip", false, "Draw larger y values higher up")
	waveFlag       = flag.Float64("wave", 0, "Plot a sine tone of this frequency (Hz) instead of an expression")
	rateFlag       = flag.Int("rate", 8000, "Sample rate for -wave")
	imageFlag      = flag.String("image", "", "Render an image file once and exit")
	thresholdFlag  = flag.Int("threshold", 128, "Luma threshold for -image (0-255)")
	fullscreenFlag = flag.Bool("fullscreen", false, "Draw on the alternate screen with tcell")
	debugFlag      = flag.Bool("debug", false, "Write debug logs to logs/termplot.log")
)

func main() {
	// Restore the terminal even if drawing panics
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMPLOT CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		log.Printf("exit: %+v", err)
		fmt.Fprintf(os.Stderr, "termplot: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies explicitly set flags
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "expr":
			cfg.Expr = *exprFlag
		case "mode":
			cfg.Render.Mode = *modeFlag
		case "fg":
			cfg.Render.Color = *fgFlag
		case "color":
			cfg.Render.ColorMode = *colorModeFlag
		case "width":
			cfg.Plot.Width = *widthFlag
		case "height":
			cfg.Plot.Height = *heightFlag
		case "frames":
			cfg.Animation.Frames = *framesFlag
		case "interval":
			cfg.Animation.Interval = intervalFlag.String()
		case "flip":
			cfg.Plot.FlipY = *flipFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode, _ := terminal.ParseColorMode(cfg.Render.ColorMode)
	fg, colored, _ := cfg.Foreground()
	st := style{shape: cfg.Shape(), fg: fg, colored: colored, mode: mode}

	if *imageFlag != "" {
		return runImage(*imageFlag, cfg, st)
	}

	var src source
	if *waveFlag > 0 {
		src, err = newToneSource(*waveFlag, *rateFlag)
	} else {
		src, err = newExprSource(cfg.Expr, raster.Range{Start: cfg.Plot.X[0], End: cfg.Plot.X[1]})
	}
	if err != nil {
		return err
	}
	defer src.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *fullscreenFlag {
		return runFullscreen(ctx, cfg, src, st)
	}
	return runInline(ctx, cfg, src, st, terminalWidth())
}

// terminalWidth returns the width of stdout in cells, 80 when unknown
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// animate calls draw with t advancing by the configured step until the frame
// limit is reached or ctx is done. A zero interval draws a single frame.
func animate(ctx context.Context, cfg *config.Config, draw func(t float64) error) error {
	interval, _ := cfg.Interval()
	if interval == 0 {
		return draw(0)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t := 0.0
	for n := 0; cfg.Animation.Frames == 0 || n < cfg.Animation.Frames; n++ {
		if err := draw(t); err != nil {
			return err
		}
		t += cfg.Animation.TimeStep

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// runInline redraws the plot in place below the cursor.
// Output that is not a terminal gets one plain frame.
func runInline(ctx context.Context, cfg *config.Config, src source, st style, cols int) error {
	plot := cfg.Sampling(cols * st.shape.W)

	draw := func(t float64) (string, error) {
		g, err := drawGrid(plot, src, t)
		if err != nil {
			return "", err
		}
		return renderText(g, st)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		frame, err := draw(0)
		if err != nil {
			return err
		}
		_, err = os.Stdout.WriteString(frame)
		return err
	}

	d := terminal.NewStdoutDisplay()
	if err := d.Reserve(cellRows(plot, st.shape)); err != nil {
		return err
	}

	err := animate(ctx, cfg, func(t float64) error {
		frame, err := draw(t)
		if err != nil {
			return err
		}
		return d.UpdateDisplay(frame)
	})

	var terr *terminal.TerminalError
	if errors.As(err, &terr) {
		log.Printf("display failed during %s: %+v", terr.Op, terr.Err)
	}
	return err
}

// runFullscreen draws on a tcell screen until Escape, Ctrl-C or the frame limit
func runFullscreen(ctx context.Context, cfg *config.Config, src source, st style) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					cancel()
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()

	region := screen.NewRegion(s, 0, 0)
	if st.colored {
		region.SetStyle(tcell.StyleDefault.Foreground(
			tcell.NewRGBColor(int32(st.fg.R), int32(st.fg.G), int32(st.fg.B))))
	}

	return animate(ctx, cfg, func(t float64) error {
		w, _ := s.Size()
		g, err := drawGrid(cfg.Sampling(w*st.shape.W), src, t)
		if err != nil {
			return err
		}
		if st.colored && st.shape == render.Pixel {
			region.UpdateColor(render.Tint(g, st.fg))
			return nil
		}
		frame, err := render.RenderShape(g, st.shape)
		if err != nil {
			return err
		}
		region.Update(frame)
		return nil
	})
}

// runImage thresholds an image file and prints it once
func runImage(path string, cfg *config.Config, st style) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("decode %s: empty image", path)
	}

	width := cfg.Plot.Width
	if width == 0 {
		width = terminalWidth() * st.shape.W
	}

	// Keep the aspect ratio; a cell is about twice as tall as it is wide
	height := width * b.Dy() * st.shape.H / (b.Dx() * 2 * st.shape.W)
	if *heightFlag > 0 {
		height = *heightFlag
	}
	height = max(height, 1)

	threshold := uint8(min(max(*thresholdFlag, 0), 255))
	g := raster.FromImage(img, width, height, threshold)
	if cfg.Plot.FlipY {
		g.FlipVertical()
	}

	frame, err := renderText(g, st)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(frame)
	return err
}

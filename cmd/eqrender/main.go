// Command eqrender runs a WAV file through the EQ offline and optionally
// renders the response curve with the analyzer traces to a PNG.
//
// Usage:
//
//	eqrender -in in.wav -out out.wav [flags]
//
// Examples:
//
//	eqrender -in drums.wav -out drums-eq.wav -set "Peak Gain=6" -set "Peak Freq=3000"
//	eqrender -in mix.wav -out mix-eq.wav -preset ~/.config/simple-eq/bright.toml -png graph.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/simple-eq/eq"
	"github.com/cwbudde/simple-eq/internal/audiofile"
	"github.com/cwbudde/simple-eq/internal/logging"
	"github.com/cwbudde/simple-eq/internal/plot"
	"github.com/cwbudde/simple-eq/internal/preset"
)

type config struct {
	in, out    string
	presetPath string
	savePath   string
	pngPath    string
	width      int
	height     int
	block      int
	bitDepth   int
	sets       []string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input WAV file")
	flag.StringVar(&cfg.out, "out", "", "output WAV file")
	flag.StringVar(&cfg.presetPath, "preset", "", "TOML preset to load")
	flag.StringVar(&cfg.savePath, "save", "", "write the final parameters to this TOML preset")
	flag.StringVar(&cfg.pngPath, "png", "", "render the response curve and analyzer to this PNG")
	flag.IntVar(&cfg.width, "width", 600, "PNG width in pixels")
	flag.IntVar(&cfg.height, "height", 240, "PNG height in pixels")
	flag.IntVar(&cfg.block, "block", 512, "processing block size in samples")
	flag.IntVar(&cfg.bitDepth, "bits", 0, "output bit depth (default: same as input)")
	flag.Func("set", `set a parameter, e.g. -set "Peak Gain=6" (repeatable)`, func(s string) error {
		cfg.sets = append(cfg.sets, s)
		return nil
	})
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	list := flag.Bool("list", false, "list parameters and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqrender -in in.wav -out out.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a WAV file through the EQ offline.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := logging.Init(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if *list {
		printParameters()
		return
	}

	if cfg.in == "" || (cfg.out == "" && cfg.pngPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func printParameters() {
	for _, p := range eq.Layout() {
		switch p.Kind {
		case eq.KindChoice:
			fmt.Printf("%-18s choice %v (default %g)\n", p.Name, p.Choices, p.Default)
		case eq.KindBool:
			fmt.Printf("%-18s bool (default %t)\n", p.Name, p.Default != 0)
		default:
			fmt.Printf("%-18s %g..%g step %g (default %g)\n", p.Name, p.Range.Start, p.Range.End, p.Range.Interval, p.Default)
		}
	}
}

func run(cfg config, logger *slog.Logger) error {
	src, err := audiofile.ReadFile(cfg.in)
	if err != nil {
		return err
	}
	if len(src.Channels) > 2 {
		logger.Warn("only the first two channels are equalised; the rest are silenced", "channels", len(src.Channels))
	}
	logger.Info("loaded", "path", cfg.in, "sample_rate", src.SampleRate, "channels", len(src.Channels), "frames", src.Frames())

	p := eq.NewProcessor(eq.WithLogger(logger))
	if cfg.presetPath != "" {
		if err := preset.Load(cfg.presetPath, p.Store()); err != nil {
			return err
		}
		logger.Info("preset loaded", "path", cfg.presetPath)
	}
	for _, s := range cfg.sets {
		if err := preset.Apply(s, p.Store()); err != nil {
			return err
		}
	}
	if err := p.Prepare(float64(src.SampleRate), cfg.block); err != nil {
		return err
	}

	var (
		rc     *eq.ResponseCurve
		canvas *plot.Plot
	)
	if cfg.pngPath != "" {
		canvas = plot.New(cfg.width, cfg.height)
		rc, err = eq.NewResponseCurve(p)
		if err != nil {
			return err
		}
		defer rc.Close()
	}

	process(p, src, cfg.block, func() {
		if rc != nil {
			rc.Tick(canvas.Bounds())
		}
	})

	if cfg.out != "" {
		if cfg.bitDepth != 0 {
			src.BitDepth = cfg.bitDepth
		}
		if err := audiofile.WriteFile(cfg.out, src); err != nil {
			return err
		}
		logger.Info("written", "path", cfg.out)
	}

	if cfg.savePath != "" {
		if err := preset.Save(cfg.savePath, p.Store()); err != nil {
			return err
		}
	}

	if rc != nil {
		if err := renderPNG(cfg.pngPath, canvas, rc); err != nil {
			return err
		}
		logger.Info("rendered", "path", cfg.pngPath)
	}
	return nil
}

// process runs the whole file through p in place, block by block, calling
// afterBlock once per block.
func process(p *eq.Processor, a *audiofile.Audio, block int, afterBlock func()) {
	frames := a.Frames()
	if block <= 0 {
		block = frames
	}
	channels := make([][]float64, len(a.Channels))
	for start := 0; start < frames; start += block {
		end := min(start+block, frames)
		for ch := range channels {
			channels[ch] = a.Channels[ch][start:end]
		}
		p.ProcessBlock(channels)
		afterBlock()
	}
}

func renderPNG(path string, canvas *plot.Plot, rc *eq.ResponseCurve) error {
	bounds := canvas.Bounds()
	traces := []plot.Trace{}
	if left := rc.LeftPath(); !left.Empty() {
		traces = append(traces, plot.Trace{Path: left, Color: plot.LeftColor})
	}
	if right := rc.RightPath(); !right.Empty() {
		traces = append(traces, plot.Trace{Path: right, Color: plot.RightColor})
	}
	traces = append(traces, plot.Trace{Path: rc.CurvePath(bounds), Color: plot.CurveColor, Width: 2})

	img := canvas.Render(traces...)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := plot.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

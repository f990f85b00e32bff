// Command simpleeq plays a WAV file in a loop through the EQ and lets the
// parameters be changed live from the keyboard.
//
// Usage:
//
//	simpleeq -in loop.wav [-preset p.toml] [-save p.toml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
	"github.com/cwbudde/simple-eq/eq"
	"github.com/cwbudde/simple-eq/internal/audiofile"
	"github.com/cwbudde/simple-eq/internal/logging"
	"github.com/cwbudde/simple-eq/internal/preset"
)

const (
	outputChannels   = 2
	defaultBlockSize = 256
)

func main() {
	in := flag.String("in", "", "WAV file to loop")
	presetPath := flag.String("preset", "", "TOML preset to load")
	savePath := flag.String("save", "", "TOML preset written on 's' and on exit")
	block := flag.Int("block", defaultBlockSize, "processing block size in samples")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	logger, err := logging.Init(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *block <= 0 {
		fmt.Fprintf(os.Stderr, "error: -block must be positive, got %d\n", *block)
		os.Exit(2)
	}

	if err := run(*in, *presetPath, *savePath, *block, logger); err != nil {
		logger.Error("simpleeq failed", "error", err)
		os.Exit(1)
	}
}

func run(in, presetPath, savePath string, block int, logger *slog.Logger) error {
	src, err := audiofile.ReadFile(in)
	if err != nil {
		return err
	}

	p := eq.NewProcessor(eq.WithLogger(logger))
	if presetPath != "" {
		if err := preset.Load(presetPath, p.Store()); err != nil {
			return err
		}
	}
	if err := p.Prepare(float64(src.SampleRate), block); err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate,
		ChannelCount: outputChannels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(newLoopSource(p, src, outputChannels, block))
	defer player.Close()
	player.Play()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc, err := eq.NewResponseCurve(p)
	if err != nil {
		return err
	}
	defer rc.Close()
	go func() {
		bounds := analyzer.Rect{Width: 600, Height: 240}
		_ = rc.Run(ctx, eq.DefaultRefreshRate, func() analyzer.Rect { return bounds }, nil)
	}()

	save := func() {
		if savePath == "" {
			return
		}
		if err := preset.Save(savePath, p.Store()); err != nil {
			logger.Error("save failed", "error", err)
			return
		}
		logger.Info("preset saved", "path", savePath)
	}
	defer save()

	return interact(ctx, p.Store(), save)
}

// interact reads single key presses from a raw-mode terminal until quit or
// ctx is cancelled.
func interact(ctx context.Context, s *eq.Store, save func()) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal; playing until interrupted")
		<-ctx.Done()
		return nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	fmt.Print(helpText + "\r\n")
	printStatus(s)
	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\n")
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			switch handleKey(k, s) {
			case actionQuit:
				fmt.Print("\r\n")
				return nil
			case actionSave:
				save()
			}
			printStatus(s)
		}
	}
}

func printStatus(s *eq.Store) {
	fmt.Print("\r\x1b[K" + status(s))
}

// Command wininfo prints spectral properties of the analyzer windows.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints every window the analyzer can use.
//
// Examples:
//
//	wininfo blackman-harris
//	wininfo -size 4096 hann blackman
//	wininfo -normalise -periodic
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/simple-eq/dsp/window"
)

var registry = map[string]window.Type{
	"rectangular":     window.TypeRectangular,
	"hann":            window.TypeHann,
	"hamming":         window.TypeHamming,
	"blackman":        window.TypeBlackman,
	"blackman-harris": window.TypeBlackmanHarris4Term,
}

func main() {
	size := flag.Int("size", 2048, "window length in samples")
	list := flag.Bool("list", false, "list available window names")
	periodic := flag.Bool("periodic", false, "use periodic (FFT) form instead of symmetric")
	normalise := flag.Bool("normalise", false, "scale coefficients to unit mean, as the analyzer does")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints spectral properties of the analyzer windows.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	names := sortedNames()
	if *list {
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	if args := flag.Args(); len(args) > 0 {
		names = args
	}
	if *size < 2 {
		fmt.Fprintf(os.Stderr, "error: size must be at least 2\n")
		os.Exit(2)
	}

	var opts []window.Option
	if *periodic {
		opts = append(opts, window.WithPeriodic())
	}
	if *normalise {
		opts = append(opts, window.WithNormalise())
	}

	if !printAnalysis(names, *size, opts) {
		os.Exit(1)
	}
}

func sortedNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func printAnalysis(names []string, size int, opts []window.Option) bool {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t------------\n")

	printed := 0
	for _, name := range names {
		t, ok := registry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown window %q (use -list to see available)\n", name)
			continue
		}

		coeffs := window.Generate(t, size, opts...)
		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			continue
		}
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			continue
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\n", t, size, cg, enbw, scallopLossDB(coeffs))
		printed++
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return false
	}
	return printed > 0
}

// scallopLossDB is the window's response half a bin off centre relative
// to its DC response.
func scallopLossDB(coeffs []float64) float64 {
	n := float64(len(coeffs))
	var half complex128
	dc := 0.0
	for i, w := range coeffs {
		half += complex(w, 0) * cmplx.Exp(complex(0, -math.Pi*float64(i)/n))
		dc += w
	}
	return 20 * math.Log10(cmplx.Abs(half)/dc)
}

// Package plot rasterises the EQ response curve, its grid and the analyzer
// traces into an image.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
	"github.com/cwbudde/simple-eq/dsp/core"
	"github.com/cwbudde/simple-eq/eq"
)

// Margins around the plot area, in pixels.
const (
	marginLeft   = 36
	marginRight  = 8
	marginTop    = 8
	marginBottom = 18
)

// Default colours.
var (
	Background = color.RGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xff}
	GridColor  = color.RGBA{R: 0x40, G: 0x44, B: 0x4c, A: 0xff}
	LabelColor = color.RGBA{R: 0xa0, G: 0xa4, B: 0xac, A: 0xff}
	CurveColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	LeftColor  = color.RGBA{R: 0x3c, G: 0xb4, B: 0xe6, A: 0xc0}
	RightColor = color.RGBA{R: 0xf0, G: 0xc8, B: 0x3c, A: 0xc0}
)

// Trace is one polyline to draw.
type Trace struct {
	Path  analyzer.Path
	Color color.Color
	Width float64
}

// Plot is an image of fixed size with a grid-framed plot area.
type Plot struct {
	width, height int
	bounds        analyzer.Rect
}

// New returns a plot of the given pixel size. Sizes too small to hold the
// margins are grown to fit.
func New(width, height int) *Plot {
	width = max(width, marginLeft+marginRight+1)
	height = max(height, marginTop+marginBottom+1)
	return &Plot{
		width:  width,
		height: height,
		bounds: analyzer.Rect{
			X:      marginLeft,
			Y:      marginTop,
			Width:  float64(width - marginLeft - marginRight),
			Height: float64(height - marginTop - marginBottom),
		},
	}
}

// Bounds returns the plot area that traces should be scaled to.
func (p *Plot) Bounds() analyzer.Rect {
	return p.bounds
}

// Size returns the image size.
func (p *Plot) Size() (int, int) {
	return p.width, p.height
}

// Render draws the grid and then each trace in order.
func (p *Plot) Render(traces ...Trace) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	p.drawGrid(img)
	for _, tr := range traces {
		w := tr.Width
		if w <= 0 {
			w = 1
		}
		p.stroke(img, tr.Path.Points, w, tr.Color)
	}
	return img
}

func (p *Plot) drawGrid(img *image.RGBA) {
	b := p.bounds
	for _, f := range eq.GridFrequencies {
		x := b.X + core.MapFromLog10(f, analyzer.MinFrequency, analyzer.MaxFrequency)*b.Width
		p.stroke(img, []analyzer.Point{{X: x, Y: b.Y}, {X: x, Y: b.Bottom()}}, 1, GridColor)
		label := frequencyLabel(f)
		lx := int(x) - font.MeasureString(basicfont.Face7x13, label).Round()/2
		p.label(img, label, lx, p.height-4)
	}
	for _, g := range eq.GridGains {
		y := core.MapRange(g, -eq.CurveRangeDB, eq.CurveRangeDB, b.Bottom(), b.Y)
		p.stroke(img, []analyzer.Point{{X: b.X, Y: y}, {X: b.Right(), Y: y}}, 1, GridColor)
		label := gainLabel(g)
		lx := marginLeft - 4 - font.MeasureString(basicfont.Face7x13, label).Round()
		p.label(img, label, lx, int(y)+4)
	}
}

func (p *Plot) label(img *image.RGBA, s string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// stroke draws pts as a polyline of the given width. Each segment is a
// rectangle slightly extended along its direction so joints overlap.
func (p *Plot) stroke(img *image.RGBA, pts []analyzer.Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	z := vector.NewRasterizer(p.width, p.height)
	hw := width / 2
	drawn := false
	for i := 1; i < len(pts); i++ {
		a, b := p.clamp(pts[i-1]), p.clamp(pts[i])
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l*hw, dy/l*hw
		nx, ny := -uy, ux
		z.MoveTo(float32(a.X-ux+nx), float32(a.Y-uy+ny))
		z.LineTo(float32(b.X+ux+nx), float32(b.Y+uy+ny))
		z.LineTo(float32(b.X+ux-nx), float32(b.Y+uy-ny))
		z.LineTo(float32(a.X-ux-nx), float32(a.Y-uy-ny))
		z.ClosePath()
		drawn = true
	}
	if drawn {
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

func (p *Plot) clamp(pt analyzer.Point) analyzer.Point {
	return analyzer.Point{
		X: core.Clamp(pt.X, 0, float64(p.width)),
		Y: core.Clamp(pt.Y, 0, float64(p.height)),
	}
}

func frequencyLabel(f float64) string {
	if f >= 1000 {
		return fmt.Sprintf("%gk", f/1000)
	}
	return fmt.Sprintf("%g", f)
}

func gainLabel(g float64) string {
	if g > 0 {
		return fmt.Sprintf("+%g", g)
	}
	return fmt.Sprintf("%g", g)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

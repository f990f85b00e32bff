package analyzer

// Point is a 2-D pixel coordinate.
type Point struct {
	X, Y float64
}

// Rect is a pixel rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Path is a single polyline.
type Path struct {
	Points []Point
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() {
	p.Points = p.Points[:0]
}

// MoveTo discards the current points and starts the polyline at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Points = append(p.Points[:0], Point{X: x, Y: y})
}

// LineTo extends the polyline to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Points = append(p.Points, Point{X: x, Y: y})
}

// Len returns the number of points.
func (p Path) Len() int {
	return len(p.Points)
}

// Empty reports whether the path has no points.
func (p Path) Empty() bool {
	return len(p.Points) == 0
}

// CopyPath copies src into dst, reusing dst's point storage.
func CopyPath(dst *Path, src Path) {
	dst.Points = append(dst.Points[:0], src.Points...)
}

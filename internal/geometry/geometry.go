package geometry

import "math"

// Point is a location in either item-local or scene coordinates; the
// coordinate space is determined by context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Equal reports whether p and q are the same point within epsilon.
func (p Point) Equal(q Point) bool {
	const eps = 1e-9
	return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints returns the rect spanning p and q as opposite corners.
// Width/height may be negative if q is above or left of p; callers that
// need a well-formed rect should call Normalized.
func RectFromPoints(p, q Point) Rect {
	return Rect{X: p.X, Y: p.Y, Width: q.X - p.X, Height: q.Y - p.Y}
}

// Normalized returns an equivalent rect with non-negative width and height.
func (r Rect) Normalized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Adjusted returns the rect grown by the given margins on each side.
// Negative margins shrink the rect.
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 float64) Rect {
	return Rect{
		X:      r.X + dx1,
		Y:      r.Y + dy1,
		Width:  r.Width - dx1 + dx2,
		Height: r.Height - dy1 + dy2,
	}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// TopLeft returns the rect's minimum corner.
func (r Rect) TopLeft() Point {
	return Point{r.X, r.Y}
}

// BottomRight returns the rect's maximum corner.
func (r Rect) BottomRight() Point {
	return Point{r.X + r.Width, r.Y + r.Height}
}

// Polygon is an ordered sequence of vertices.
type Polygon []Point

// BoundingRect returns the axis-aligned box covering all vertices.
func (pg Polygon) BoundingRect() Rect {
	if len(pg) == 0 {
		return Rect{}
	}

	minX, minY := pg[0].X, pg[0].Y
	maxX, maxY := pg[0].X, pg[0].Y
	for _, p := range pg[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether p lies inside the polygon, using the even-odd
// rule. Points exactly on an edge may land on either side.
func (pg Polygon) Contains(p Point) bool {
	inside := false
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// DistanceToSegment returns the distance from p to the segment from a to b.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.DistanceTo(a)
	}

	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = max(0, min(1, t))

	closest := Point{a.X + t*ab.X, a.Y + t*ab.Y}
	return p.DistanceTo(closest)
}

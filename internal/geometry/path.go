package geometry

import "math"

// PathOp identifies a path segment kind.
type PathOp byte

const (
	MoveTo PathOp = iota
	LineTo
	CubicTo
	ClosePath
)

// PathElement is one segment of a path. Points holds 1 point for
// MoveTo/LineTo, 3 for CubicTo (two control points then the endpoint),
// and none for ClosePath.
type PathElement struct {
	Op     PathOp
	Points []Point
}

// Path is an outline built from move/line/cubic segments. It is used for
// precise hit testing and for describing painted shapes to a surface.
type Path struct {
	elements []PathElement
}

// kappa approximates a quarter circle with a cubic Bezier.
const kappa = 0.5522847498307933

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Elements returns the path's segments in order.
func (p *Path) Elements() []PathElement {
	if p == nil {
		return nil
	}
	return p.elements
}

func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, PathElement{Op: MoveTo, Points: []Point{pt}})
}

func (p *Path) LineTo(pt Point) {
	p.elements = append(p.elements, PathElement{Op: LineTo, Points: []Point{pt}})
}

func (p *Path) CubicTo(c1, c2, end Point) {
	p.elements = append(p.elements, PathElement{Op: CubicTo, Points: []Point{c1, c2, end}})
}

func (p *Path) Close() {
	p.elements = append(p.elements, PathElement{Op: ClosePath})
}

// AddRect appends a closed rectangle subpath.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(Point{r.X, r.Y})
	p.LineTo(Point{r.X + r.Width, r.Y})
	p.LineTo(Point{r.X + r.Width, r.Y + r.Height})
	p.LineTo(Point{r.X, r.Y + r.Height})
	p.Close()
}

// AddRoundedRect appends a closed rectangle subpath with elliptical
// corners of radii rx and ry. Radii are clamped to half the rect size.
func (p *Path) AddRoundedRect(r Rect, rx, ry float64) {
	rx = max(0, min(rx, r.Width/2))
	ry = max(0, min(ry, r.Height/2))
	if rx == 0 && ry == 0 {
		p.AddRect(r)
		return
	}

	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height

	p.MoveTo(Point{x0 + rx, y0})
	p.LineTo(Point{x1 - rx, y0})
	p.CubicTo(Point{x1 - rx + rx*kappa, y0}, Point{x1, y0 + ry - ry*kappa}, Point{x1, y0 + ry})
	p.LineTo(Point{x1, y1 - ry})
	p.CubicTo(Point{x1, y1 - ry + ry*kappa}, Point{x1 - rx + rx*kappa, y1}, Point{x1 - rx, y1})
	p.LineTo(Point{x0 + rx, y1})
	p.CubicTo(Point{x0 + rx - rx*kappa, y1}, Point{x0, y1 - ry + ry*kappa}, Point{x0, y1 - ry})
	p.LineTo(Point{x0, y0 + ry})
	p.CubicTo(Point{x0, y0 + ry - ry*kappa}, Point{x0 + rx - rx*kappa, y0}, Point{x0 + rx, y0})
	p.Close()
}

// AddEllipse appends a closed ellipse subpath inscribed in r.
func (p *Path) AddEllipse(r Rect) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	rx, ry := r.Width/2, r.Height/2

	p.MoveTo(Point{cx + rx, cy})
	p.CubicTo(Point{cx + rx, cy + ry*kappa}, Point{cx + rx*kappa, cy + ry}, Point{cx, cy + ry})
	p.CubicTo(Point{cx - rx*kappa, cy + ry}, Point{cx - rx, cy + ry*kappa}, Point{cx - rx, cy})
	p.CubicTo(Point{cx - rx, cy - ry*kappa}, Point{cx - rx*kappa, cy - ry}, Point{cx, cy - ry})
	p.CubicTo(Point{cx + rx*kappa, cy - ry}, Point{cx + rx, cy - ry*kappa}, Point{cx + rx, cy})
	p.Close()
}

// AddPolygon appends the polygon as a closed subpath.
func (p *Path) AddPolygon(pg Polygon) {
	if len(pg) == 0 {
		return
	}
	p.MoveTo(pg[0])
	for _, pt := range pg[1:] {
		p.LineTo(pt)
	}
	p.Close()
}

// AddPath appends all of other's segments to p.
func (p *Path) AddPath(other *Path) {
	if other.IsEmpty() {
		return
	}
	p.elements = append(p.elements, other.elements...)
}

// AddPolyline appends the points as an open subpath.
func (p *Path) AddPolyline(pts []Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
}

// Transformed returns a copy of the path with every point mapped through m.
func (p *Path) Transformed(m Matrix2D) *Path {
	if p.IsEmpty() {
		return &Path{}
	}

	out := &Path{elements: make([]PathElement, len(p.elements))}
	for i, el := range p.elements {
		pts := make([]Point, len(el.Points))
		for j, pt := range el.Points {
			pts[j] = m.TransformPoint(pt)
		}
		out.elements[i] = PathElement{Op: el.Op, Points: pts}
	}
	return out
}

// BoundingRect returns the axis-aligned box covering all path points,
// including cubic control points (a cheap, conservative bound).
func (p *Path) BoundingRect() Rect {
	if p.IsEmpty() {
		return Rect{}
	}

	first := true
	var minX, minY, maxX, maxY float64
	for _, el := range p.elements {
		for _, pt := range el.Points {
			if first {
				minX, minY, maxX, maxY = pt.X, pt.Y, pt.X, pt.Y
				first = false
				continue
			}
			minX = min(minX, pt.X)
			minY = min(minY, pt.Y)
			maxX = max(maxX, pt.X)
			maxY = max(maxY, pt.Y)
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether pt is inside the path's closed subpaths,
// using the even-odd rule on a flattened approximation.
func (p *Path) Contains(pt Point) bool {
	for _, pg := range p.flatten() {
		if pg.Contains(pt) {
			return true
		}
	}
	return false
}

// flattenSteps controls cubic flattening resolution for hit testing.
const flattenSteps = 16

func (p *Path) flatten() []Polygon {
	if p.IsEmpty() {
		return nil
	}

	var polys []Polygon
	var current Polygon
	var cursor Point

	flush := func() {
		if len(current) >= 3 {
			polys = append(polys, current)
		}
		current = nil
	}

	for _, el := range p.elements {
		switch el.Op {
		case MoveTo:
			flush()
			cursor = el.Points[0]
			current = Polygon{cursor}
		case LineTo:
			cursor = el.Points[0]
			current = append(current, cursor)
		case CubicTo:
			c1, c2, end := el.Points[0], el.Points[1], el.Points[2]
			start := cursor
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				current = append(current, cubicAt(start, c1, c2, end, t))
			}
			cursor = end
		case ClosePath:
			flush()
		}
	}
	flush()
	return polys
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// StrokeOutline returns a conservative outline of the path stroked with
// the given pen width: each flattened segment contributes a rectangle of
// width penWidth. This mirrors how hit testing treats thin shapes without
// constructing an exact stroke.
func (p *Path) StrokeOutline(penWidth float64) *Path {
	half := max(penWidth/2, 1e-6)
	out := &Path{}

	appendSegment := func(a, b Point) {
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			out.AddRect(Rect{X: a.X - half, Y: a.Y - half, Width: 2 * half, Height: 2 * half})
			return
		}
		// Unit normal scaled to half the pen width.
		nx, ny := -dy/length*half, dx/length*half
		out.AddPolygon(Polygon{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
	}

	var cursor, start Point
	started := false
	for _, el := range p.elements {
		switch el.Op {
		case MoveTo:
			cursor = el.Points[0]
			start = cursor
			started = true
		case LineTo:
			if started {
				appendSegment(cursor, el.Points[0])
			}
			cursor = el.Points[0]
		case CubicTo:
			c1, c2, end := el.Points[0], el.Points[1], el.Points[2]
			prev := cursor
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				next := cubicAt(cursor, c1, c2, end, t)
				appendSegment(prev, next)
				prev = next
			}
			cursor = end
		case ClosePath:
			if started {
				appendSegment(cursor, start)
				cursor = start
			}
		}
	}
	return out
}

package drawing

import (
	"slices"

	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// Box point roles shared by rect and ellipse items. The two corner points
// at indices 0 and 4 define the box; the remaining six are followers
// re-derived on every resize.
const (
	boxPointTopLeft = iota
	boxPointTopMid
	boxPointTopRight
	boxPointMidRight
	boxPointBottomRight
	boxPointBottomMid
	boxPointBottomLeft
	boxPointMidLeft
	boxPointCount
)

// RectItem is a rectangle with optional rounded corners, represented by
// eight boundary points.
type RectItem struct {
	ItemBase

	cornerRadiusX float64
	cornerRadiusY float64
}

// NewRectItem creates a zero-size rectangle at the origin, seeded with
// the sheet's current default style.
func NewRectItem(sheet *StyleSheet) *RectItem {
	item := &RectItem{ItemBase: newItemBase(typeid.NewItemID(), sheet)}
	item.bind(item)
	for i := 0; i < boxPointCount; i++ {
		item.AddPoint(NewItemPoint(geometry.Point{}, PointControl|PointConnection))
	}
	item.style.seedPenAndBrush()
	return item
}

func (r *RectItem) Kind() string {
	return KindRect
}

func (r *RectItem) Copy() Item {
	out := NewRectItem(nil)
	r.copyBaseInto(&out.ItemBase)
	out.cornerRadiusX = r.cornerRadiusX
	out.cornerRadiusY = r.cornerRadiusY
	return out
}

// SetRect positions all eight points to represent rect, given in local
// coordinates.
func (r *RectItem) SetRect(rect geometry.Rect) {
	setBoxPoints(r.points, rect)
}

// Rect returns the rectangle spanned by the two defining corner points.
func (r *RectItem) Rect() geometry.Rect {
	return boxRect(r.points)
}

// SetCornerRadii sets the corner radii, one assignment per axis.
func (r *RectItem) SetCornerRadii(radiusX, radiusY float64) {
	r.cornerRadiusX = radiusX
	r.cornerRadiusY = radiusY
}

func (r *RectItem) CornerRadiusX() float64 {
	return r.cornerRadiusX
}

func (r *RectItem) CornerRadiusY() float64 {
	return r.cornerRadiusY
}

func (r *RectItem) IsValid() bool {
	return len(r.points) >= boxPointCount &&
		!r.points[boxPointTopLeft].Position().Equal(r.points[boxPointBottomRight].Position())
}

func (r *RectItem) BoundingRect() geometry.Rect {
	if !r.IsValid() {
		return geometry.Rect{}
	}
	half := r.style.PenWidth() / 2
	return r.Rect().Normalized().Adjusted(-half, -half, half, half)
}

func (r *RectItem) Shape() *geometry.Path {
	shape := &geometry.Path{}
	if !r.IsValid() {
		return shape
	}

	draw := &geometry.Path{}
	draw.AddRoundedRect(r.Rect().Normalized(), r.cornerRadiusX, r.cornerRadiusY)

	pen := r.style.Pen()
	shape.AddPath(draw.StrokeOutline(pen.Width))
	if brushPaints(r.style.Brush()) {
		shape.AddPath(draw)
	}
	return shape
}

func (r *RectItem) CenterPos() geometry.Point {
	return r.BoundingRect().Center()
}

func (r *RectItem) Render(s Surface) {
	if !r.IsValid() {
		return
	}
	s.DrawRoundedRect(r.Rect().Normalized(), r.cornerRadiusX, r.cornerRadiusY, r.style.Pen(), r.style.Brush())
}

func (r *RectItem) Resize(point *ItemPoint, scenePos geometry.Point) error {
	if err := r.resizePoint(point, scenePos); err != nil {
		return err
	}
	resizeBoxPoints(r.points, point)
	r.renormalizeOrigin()
	return nil
}

func (r *RectItem) Properties() map[string]any {
	props := r.styleProperties()
	props["corner-radius-x"] = r.cornerRadiusX
	props["corner-radius-y"] = r.cornerRadiusY
	return props
}

func (r *RectItem) SetProperties(props map[string]any) {
	r.applyStyleProperties(props)
	if v, ok := props["corner-radius-x"]; ok {
		r.cornerRadiusX = floatValue(v, r.cornerRadiusX)
	}
	if v, ok := props["corner-radius-y"]; ok {
		r.cornerRadiusY = floatValue(v, r.cornerRadiusY)
	}
}

// --- shared eight-point box helpers ---

func setBoxPoints(points []*ItemPoint, r geometry.Rect) {
	if len(points) < boxPointCount {
		return
	}
	center := r.Center()
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height

	points[boxPointTopLeft].SetPosition(geometry.Point{X: left, Y: top})
	points[boxPointTopMid].SetPosition(geometry.Point{X: center.X, Y: top})
	points[boxPointTopRight].SetPosition(geometry.Point{X: right, Y: top})
	points[boxPointMidRight].SetPosition(geometry.Point{X: right, Y: center.Y})
	points[boxPointBottomRight].SetPosition(geometry.Point{X: right, Y: bottom})
	points[boxPointBottomMid].SetPosition(geometry.Point{X: center.X, Y: bottom})
	points[boxPointBottomLeft].SetPosition(geometry.Point{X: left, Y: bottom})
	points[boxPointMidLeft].SetPosition(geometry.Point{X: left, Y: center.Y})
}

func boxRect(points []*ItemPoint) geometry.Rect {
	if len(points) < boxPointCount {
		return geometry.Rect{}
	}
	return geometry.RectFromPoints(
		points[boxPointTopLeft].Position(),
		points[boxPointBottomRight].Position(),
	)
}

// resizeBoxPoints re-derives all eight boundary points after moved was
// repositioned. Only the edges the moved point controls change; the
// opposite edges stay fixed.
func resizeBoxPoints(points []*ItemPoint, moved *ItemPoint) {
	index := slices.Index(points, moved)
	if index < 0 || index >= boxPointCount || len(points) < boxPointCount {
		return
	}

	r := boxRect(points)
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	p := moved.Position()

	switch index {
	case boxPointTopLeft:
		left, top = p.X, p.Y
	case boxPointTopMid:
		top = p.Y
	case boxPointTopRight:
		right, top = p.X, p.Y
	case boxPointMidRight:
		right = p.X
	case boxPointBottomRight:
		right, bottom = p.X, p.Y
	case boxPointBottomMid:
		bottom = p.Y
	case boxPointBottomLeft:
		left, bottom = p.X, p.Y
	case boxPointMidLeft:
		left = p.X
	}

	setBoxPoints(points, geometry.Rect{X: left, Y: top, Width: right - left, Height: bottom - top})
}

func brushPaints(b Brush) bool {
	return b.Style != "none" && b.Opacity > 0
}

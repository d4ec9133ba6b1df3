package drawing

import (
	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// EllipseItem is an ellipse inscribed in an eight-point box, using the
// same boundary-point layout as RectItem.
type EllipseItem struct {
	ItemBase
}

// NewEllipseItem creates a zero-size ellipse at the origin, seeded with
// the sheet's current default style.
func NewEllipseItem(sheet *StyleSheet) *EllipseItem {
	item := &EllipseItem{ItemBase: newItemBase(typeid.NewItemID(), sheet)}
	item.bind(item)
	for i := 0; i < boxPointCount; i++ {
		item.AddPoint(NewItemPoint(geometry.Point{}, PointControl|PointConnection))
	}
	item.style.seedPenAndBrush()
	return item
}

func (e *EllipseItem) Kind() string {
	return KindEllipse
}

func (e *EllipseItem) Copy() Item {
	out := NewEllipseItem(nil)
	e.copyBaseInto(&out.ItemBase)
	return out
}

// SetEllipse positions the boundary points so the ellipse is inscribed in
// rect, given in local coordinates.
func (e *EllipseItem) SetEllipse(rect geometry.Rect) {
	setBoxPoints(e.points, rect)
}

// Ellipse returns the box the ellipse is inscribed in.
func (e *EllipseItem) Ellipse() geometry.Rect {
	return boxRect(e.points)
}

func (e *EllipseItem) IsValid() bool {
	return len(e.points) >= boxPointCount &&
		!e.points[boxPointTopLeft].Position().Equal(e.points[boxPointBottomRight].Position())
}

func (e *EllipseItem) BoundingRect() geometry.Rect {
	if !e.IsValid() {
		return geometry.Rect{}
	}
	half := e.style.PenWidth() / 2
	return e.Ellipse().Normalized().Adjusted(-half, -half, half, half)
}

func (e *EllipseItem) Shape() *geometry.Path {
	shape := &geometry.Path{}
	if !e.IsValid() {
		return shape
	}

	draw := &geometry.Path{}
	draw.AddEllipse(e.Ellipse().Normalized())

	pen := e.style.Pen()
	shape.AddPath(draw.StrokeOutline(pen.Width))
	if brushPaints(e.style.Brush()) {
		shape.AddPath(draw)
	}
	return shape
}

func (e *EllipseItem) CenterPos() geometry.Point {
	return e.BoundingRect().Center()
}

func (e *EllipseItem) Render(s Surface) {
	if !e.IsValid() {
		return
	}
	s.DrawEllipse(e.Ellipse().Normalized(), e.style.Pen(), e.style.Brush())
}

func (e *EllipseItem) Resize(point *ItemPoint, scenePos geometry.Point) error {
	if err := e.resizePoint(point, scenePos); err != nil {
		return err
	}
	resizeBoxPoints(e.points, point)
	e.renormalizeOrigin()
	return nil
}

func (e *EllipseItem) Properties() map[string]any {
	return e.styleProperties()
}

func (e *EllipseItem) SetProperties(props map[string]any) {
	e.applyStyleProperties(props)
}

package drawing

import (
	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// LineItem is a straight segment between two endpoints. Both endpoints
// are connectable and may be dragged independently.
type LineItem struct {
	ItemBase
}

// NewLineItem creates a zero-length line at the origin, seeded with the
// sheet's current default style. A zero-length line is invalid until one
// endpoint moves.
func NewLineItem(sheet *StyleSheet) *LineItem {
	item := &LineItem{ItemBase: newItemBase(typeid.NewItemID(), sheet)}
	item.bind(item)
	item.AddPoint(NewItemPoint(geometry.Point{}, PointControl|PointConnection|PointFree))
	item.AddPoint(NewItemPoint(geometry.Point{}, PointControl|PointConnection|PointFree))

	item.style.seed(StylePenStyle, defaultPenStyle)
	item.style.seed(StylePenColor, defaultPenColor)
	item.style.seed(StylePenOpacity, 1.0)
	item.style.seed(StylePenWidth, defaultPenWidth)
	item.style.seed(StylePenCapStyle, defaultPenCap)
	item.style.seed(StylePenJoinStyle, defaultPenJoin)
	return item
}

func (l *LineItem) Kind() string {
	return KindLine
}

func (l *LineItem) Copy() Item {
	out := NewLineItem(nil)
	l.copyBaseInto(&out.ItemBase)
	return out
}

// SetLine positions the endpoints, given in local coordinates.
func (l *LineItem) SetLine(start, end geometry.Point) {
	if len(l.points) < 2 {
		return
	}
	l.points[0].SetPosition(start)
	l.points[1].SetPosition(end)
}

// Line returns the endpoints in local coordinates.
func (l *LineItem) Line() (geometry.Point, geometry.Point) {
	if len(l.points) < 2 {
		return geometry.Point{}, geometry.Point{}
	}
	return l.points[0].Position(), l.points[1].Position()
}

func (l *LineItem) IsValid() bool {
	if len(l.points) < 2 {
		return false
	}
	return !l.points[0].Position().Equal(l.points[1].Position())
}

func (l *LineItem) BoundingRect() geometry.Rect {
	if !l.IsValid() {
		return geometry.Rect{}
	}
	start, end := l.Line()
	half := l.style.PenWidth() / 2
	return geometry.RectFromPoints(start, end).Normalized().Adjusted(-half, -half, half, half)
}

func (l *LineItem) Shape() *geometry.Path {
	if !l.IsValid() {
		return &geometry.Path{}
	}
	start, end := l.Line()
	draw := &geometry.Path{}
	draw.AddPolyline([]geometry.Point{start, end})
	return draw.StrokeOutline(l.style.Pen().Width)
}

func (l *LineItem) CenterPos() geometry.Point {
	return l.BoundingRect().Center()
}

func (l *LineItem) Render(s Surface) {
	if !l.IsValid() {
		return
	}
	start, end := l.Line()
	s.DrawLine(start, end, l.style.Pen())
}

func (l *LineItem) Resize(point *ItemPoint, scenePos geometry.Point) error {
	if err := l.resizePoint(point, scenePos); err != nil {
		return err
	}
	l.renormalizeOrigin()
	return nil
}

func (l *LineItem) Properties() map[string]any {
	return l.styleProperties()
}

func (l *LineItem) SetProperties(props map[string]any) {
	l.applyStyleProperties(props)
}

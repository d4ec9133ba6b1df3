package drawing

import (
	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// polylineMinPoints is the structural minimum for an open multi-segment
// line.
const polylineMinPoints = 2

// PolylineItem is an open chain of segments with one item point per
// vertex. Interior vertices can be inserted and removed.
type PolylineItem struct {
	ItemBase
}

// NewPolylineItem creates a zero-length two-vertex polyline at the
// origin, seeded with the sheet's current default style.
func NewPolylineItem(sheet *StyleSheet) *PolylineItem {
	item := &PolylineItem{ItemBase: newItemBase(typeid.NewItemID(), sheet)}
	item.bind(item)
	item.SetFlags(DefaultItemFlags | CanInsertPoints | CanRemovePoints)
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

func (pl *PolylineItem) Kind() string {
	return KindPolyline
}

func (pl *PolylineItem) Copy() Item {
	out := NewPolylineItem(nil)
	pl.copyBaseInto(&out.ItemBase)
	return out
}

// SetPolyline rebuilds the item's points to match the given vertices in
// local coordinates. Existing points (and their connections) are dropped.
// Endpoints keep their free-drag capability.
func (pl *PolylineItem) SetPolyline(vertices []geometry.Point) {
	pl.ClearPoints()
	for i, p := range vertices {
		flags := PointControl | PointConnection
		if i == 0 || i == len(vertices)-1 {
			flags |= PointFree
		}
		pl.AddPoint(NewItemPoint(p, flags))
	}
}

// Polyline returns the vertices in local coordinates.
func (pl *PolylineItem) Polyline() []geometry.Point {
	out := make([]geometry.Point, len(pl.points))
	for i, p := range pl.points {
		out[i] = p.Position()
	}
	return out
}

// IsValid reports false when all vertices coincide.
func (pl *PolylineItem) IsValid() bool {
	if len(pl.points) < polylineMinPoints {
		return false
	}
	first := pl.points[0].Position()
	for _, p := range pl.points[1:] {
		if !p.Position().Equal(first) {
			return true
		}
	}
	return false
}

func (pl *PolylineItem) BoundingRect() geometry.Rect {
	if !pl.IsValid() {
		return geometry.Rect{}
	}
	half := pl.style.PenWidth() / 2
	return geometry.Polygon(pl.Polyline()).BoundingRect().Adjusted(-half, -half, half, half)
}

func (pl *PolylineItem) Shape() *geometry.Path {
	if !pl.IsValid() {
		return &geometry.Path{}
	}
	draw := &geometry.Path{}
	draw.AddPolyline(pl.Polyline())
	return draw.StrokeOutline(pl.style.Pen().Width)
}

func (pl *PolylineItem) CenterPos() geometry.Point {
	return pl.BoundingRect().Center()
}

func (pl *PolylineItem) Render(s Surface) {
	if !pl.IsValid() {
		return
	}
	s.DrawPolyline(pl.Polyline(), pl.style.Pen())
}

func (pl *PolylineItem) Resize(point *ItemPoint, scenePos geometry.Point) error {
	if err := pl.resizePoint(point, scenePos); err != nil {
		return err
	}
	pl.renormalizeOrigin()
	return nil
}

// ItemPointToInsert returns a new interior vertex at localPos on the
// nearest segment.
func (pl *PolylineItem) ItemPointToInsert(localPos geometry.Point) (*ItemPoint, int) {
	index := nearestSegmentIndex(pl.Polyline(), localPos, false)
	if index < 0 {
		return nil, -1
	}
	return NewItemPoint(localPos, PointControl|PointConnection), index + 1
}

// ItemPointToRemove returns the vertex nearest localPos, or nil if the
// polyline is at its structural minimum.
func (pl *PolylineItem) ItemPointToRemove(localPos geometry.Point) *ItemPoint {
	if len(pl.points) <= polylineMinPoints {
		return nil
	}
	return pl.PointNearest(localPos)
}

func (pl *PolylineItem) Properties() map[string]any {
	return pl.styleProperties()
}

func (pl *PolylineItem) SetProperties(props map[string]any) {
	pl.applyStyleProperties(props)
}

package drawing

import (
	"math"

	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// polygonMinPoints is the structural minimum: a polygon below three
// points no longer encloses an area.
const polygonMinPoints = 3

// PolygonItem is a closed shape with one item point per vertex. Vertices
// can be inserted and removed by the user.
type PolygonItem struct {
	ItemBase
}

// NewPolygonItem creates a degenerate three-vertex polygon at the origin,
// seeded with the sheet's current default style.
func NewPolygonItem(sheet *StyleSheet) *PolygonItem {
	item := &PolygonItem{ItemBase: newItemBase(typeid.NewItemID(), sheet)}
	item.bind(item)
	item.SetFlags(DefaultItemFlags | CanInsertPoints | CanRemovePoints)
	for i := 0; i < polygonMinPoints; i++ {
		item.AddPoint(NewItemPoint(geometry.Point{}, PointControl|PointConnection))
	}
	item.style.seedPenAndBrush()
	return item
}

func (pg *PolygonItem) Kind() string {
	return KindPolygon
}

func (pg *PolygonItem) Copy() Item {
	out := NewPolygonItem(nil)
	pg.copyBaseInto(&out.ItemBase)
	return out
}

// SetPolygon rebuilds the item's points to match the given vertices in
// local coordinates. Existing points (and their connections) are dropped.
func (pg *PolygonItem) SetPolygon(polygon geometry.Polygon) {
	pg.ClearPoints()
	for _, p := range polygon {
		pg.AddPoint(NewItemPoint(p, PointControl|PointConnection))
	}
}

// Polygon returns the vertices in local coordinates.
func (pg *PolygonItem) Polygon() geometry.Polygon {
	out := make(geometry.Polygon, len(pg.points))
	for i, p := range pg.points {
		out[i] = p.Position()
	}
	return out
}

// IsValid reports false when all vertices coincide.
func (pg *PolygonItem) IsValid() bool {
	if len(pg.points) < polygonMinPoints {
		return false
	}
	first := pg.points[0].Position()
	for _, p := range pg.points[1:] {
		if !p.Position().Equal(first) {
			return true
		}
	}
	return false
}

func (pg *PolygonItem) BoundingRect() geometry.Rect {
	if !pg.IsValid() {
		return geometry.Rect{}
	}
	half := pg.style.PenWidth() / 2
	return pg.Polygon().BoundingRect().Adjusted(-half, -half, half, half)
}

func (pg *PolygonItem) Shape() *geometry.Path {
	shape := &geometry.Path{}
	if !pg.IsValid() {
		return shape
	}

	draw := &geometry.Path{}
	draw.AddPolygon(pg.Polygon())

	pen := pg.style.Pen()
	shape.AddPath(draw.StrokeOutline(pen.Width))
	if brushPaints(pg.style.Brush()) {
		shape.AddPath(draw)
	}
	return shape
}

func (pg *PolygonItem) CenterPos() geometry.Point {
	return pg.BoundingRect().Center()
}

func (pg *PolygonItem) Render(s Surface) {
	if !pg.IsValid() {
		return
	}
	s.DrawPolygon(pg.Polygon(), pg.style.Pen(), pg.style.Brush())
}

func (pg *PolygonItem) Resize(point *ItemPoint, scenePos geometry.Point) error {
	if err := pg.resizePoint(point, scenePos); err != nil {
		return err
	}
	pg.renormalizeOrigin()
	return nil
}

// ItemPointToInsert returns a new vertex at localPos and the index of the
// nearest edge, so the vertex splits that edge.
func (pg *PolygonItem) ItemPointToInsert(localPos geometry.Point) (*ItemPoint, int) {
	index := nearestSegmentIndex(pg.Polygon(), localPos, true)
	if index < 0 {
		return nil, -1
	}
	return NewItemPoint(localPos, PointControl|PointConnection), index + 1
}

// ItemPointToRemove returns the vertex nearest localPos, or nil if the
// polygon is at its structural minimum.
func (pg *PolygonItem) ItemPointToRemove(localPos geometry.Point) *ItemPoint {
	if len(pg.points) <= polygonMinPoints {
		return nil
	}
	return pg.PointNearest(localPos)
}

func (pg *PolygonItem) Properties() map[string]any {
	return pg.styleProperties()
}

func (pg *PolygonItem) SetProperties(props map[string]any) {
	pg.applyStyleProperties(props)
}

// nearestSegmentIndex returns the index i of the segment starting at
// vertex i that lies closest to p. Closed shapes include the wrap-around
// segment from the last vertex back to the first.
func nearestSegmentIndex(vertices geometry.Polygon, p geometry.Point, closed bool) int {
	n := len(vertices)
	if n < 2 {
		return -1
	}

	segments := n - 1
	if closed {
		segments = n
	}

	best := math.Inf(1)
	index := -1
	for i := 0; i < segments; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		if d := geometry.DistanceToSegment(p, a, b); d < best {
			best = d
			index = i
		}
	}
	return index
}

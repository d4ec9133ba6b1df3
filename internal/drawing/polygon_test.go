package drawing

import (
	"testing"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

func TestPolygonInsertPointSplitsNearestEdge(t *testing.T) {
	item := NewPolygonItem(nil)
	item.SetPolygon(geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})

	// Near the middle of the top edge (vertex 0 to vertex 1).
	p, index := item.ItemPointToInsert(geometry.Point{X: 5, Y: 1})
	if p == nil {
		t.Fatal("no insertion point offered")
	}
	if index != 1 {
		t.Errorf("insertion index = %d, want 1", index)
	}

	// Near the wrap-around edge (last vertex back to first).
	p, index = item.ItemPointToInsert(geometry.Point{X: 1, Y: 5})
	if p == nil {
		t.Fatal("no insertion point offered on the closing edge")
	}
	if index != 4 {
		t.Errorf("closing-edge insertion index = %d, want 4", index)
	}
}

func TestPolygonRemoveRefusedAtMinimum(t *testing.T) {
	item := NewPolygonItem(nil)
	item.SetPolygon(geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})

	if p := item.ItemPointToRemove(geometry.Point{X: 10, Y: 0}); p != nil {
		t.Error("three-vertex polygon offered a point for removal")
	}
}

func TestPolygonRemoveAboveMinimum(t *testing.T) {
	item := NewPolygonItem(nil)
	item.SetPolygon(geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})

	p := item.ItemPointToRemove(geometry.Point{X: 10.2, Y: 0.1})
	if p == nil {
		t.Fatal("four-vertex polygon refused removal")
	}
	if !p.Position().Equal(geometry.Point{X: 10, Y: 0}) {
		t.Errorf("removal candidate = %v, want the nearest vertex (10,0)", p.Position())
	}
}

func TestPolygonValidity(t *testing.T) {
	item := NewPolygonItem(nil)
	if item.IsValid() {
		t.Error("coincident-vertex polygon reported valid")
	}

	item.SetPolygon(geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	if !item.IsValid() {
		t.Error("triangle reported invalid")
	}
}

func TestPolylineInsertOnOpenChain(t *testing.T) {
	item := NewPolylineItem(nil)
	item.SetPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}})

	// There is no wrap-around segment: a point near the gap between the
	// last and first vertices must land on a real segment instead.
	p, index := item.ItemPointToInsert(geometry.Point{X: 15, Y: 5})
	if p == nil {
		t.Fatal("no insertion point offered")
	}
	if index != 2 {
		t.Errorf("insertion index = %d, want 2", index)
	}
}

func TestPolylineRemoveRefusedAtMinimum(t *testing.T) {
	item := NewPolylineItem(nil)
	item.SetPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})

	if p := item.ItemPointToRemove(geometry.Point{}); p != nil {
		t.Error("two-vertex polyline offered a point for removal")
	}
}

func TestPolylineEndpointFlags(t *testing.T) {
	item := NewPolylineItem(nil)
	item.SetPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}})

	pts := item.Points()
	if pts[0].Flags()&PointFree == 0 || pts[2].Flags()&PointFree == 0 {
		t.Error("endpoints missing the free-drag flag")
	}
	if pts[1].Flags()&PointFree != 0 {
		t.Error("interior vertex carries the free-drag flag")
	}
}

func TestLineValidity(t *testing.T) {
	item := NewLineItem(nil)
	if item.IsValid() {
		t.Error("zero-length line reported valid")
	}

	item.SetLine(geometry.Point{}, geometry.Point{X: 1, Y: 1})
	if !item.IsValid() {
		t.Error("non-degenerate line reported invalid")
	}
}

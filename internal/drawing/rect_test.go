package drawing

import (
	"testing"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

func TestNewRectItemStartsDegenerate(t *testing.T) {
	item := NewRectItem(nil)

	if got := len(item.Points()); got != boxPointCount {
		t.Fatalf("point count = %d, want %d", got, boxPointCount)
	}
	if item.IsValid() {
		t.Error("zero-size rect reported valid")
	}
	if !item.BoundingRect().IsEmpty() {
		t.Error("invalid rect has a non-empty bounding rect")
	}
}

func TestSetRectPlacesAllEightPoints(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 50})

	want := []geometry.Point{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 25},
		{X: 100, Y: 50}, {X: 50, Y: 50}, {X: 0, Y: 50}, {X: 0, Y: 25},
	}
	for i, p := range item.Points() {
		if !p.Position().Equal(want[i]) {
			t.Errorf("point %d = %v, want %v", i, p.Position(), want[i])
		}
	}
	if !item.IsValid() {
		t.Error("sized rect reported invalid")
	}
}

func TestRectCornerRadiiIndependent(t *testing.T) {
	item := NewRectItem(nil)
	item.SetCornerRadii(8, 3)

	if got := item.CornerRadiusX(); got != 8 {
		t.Errorf("CornerRadiusX = %v, want 8", got)
	}
	if got := item.CornerRadiusY(); got != 3 {
		t.Errorf("CornerRadiusY = %v, want 3", got)
	}
}

func TestRectCornerRadiiViaProperties(t *testing.T) {
	item := NewRectItem(nil)
	item.SetProperties(map[string]any{
		"corner-radius-x": 6.0,
		"corner-radius-y": 2.0,
	})

	props := item.Properties()
	if props["corner-radius-x"] != 6.0 || props["corner-radius-y"] != 2.0 {
		t.Errorf("properties = rx:%v ry:%v, want 6 and 2",
			props["corner-radius-x"], props["corner-radius-y"])
	}
}

func TestResizeCornerKeepsOppositeFixed(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})

	br := item.Points()[boxPointBottomRight]
	if err := item.Resize(br, geometry.Point{X: 60, Y: 80}); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	r := item.Rect().Normalized()
	want := geometry.Rect{X: 0, Y: 0, Width: 60, Height: 80}
	if r != want {
		t.Errorf("rect after corner drag = %+v, want %+v", r, want)
	}

	// Midpoints follow the new box.
	mid := item.Points()[boxPointBottomMid].Position()
	if !mid.Equal(geometry.Point{X: 30, Y: 80}) {
		t.Errorf("bottom midpoint = %v, want (30,80)", mid)
	}
}

func TestResizeEdgeMovesOneEdge(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})

	mr := item.Points()[boxPointMidRight]
	if err := item.Resize(mr, geometry.Point{X: 140, Y: 99}); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	r := item.Rect().Normalized()
	want := geometry.Rect{X: 0, Y: 0, Width: 140, Height: 50}
	if r != want {
		t.Errorf("rect after edge drag = %+v, want %+v (only width changes)", r, want)
	}
}

func TestResizeThroughOppositeCorner(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})

	// Drag the bottom-right corner past the top-left. The rect inverts
	// but stays well-formed after normalization.
	br := item.Points()[boxPointBottomRight]
	if err := item.Resize(br, geometry.Point{X: -20, Y: -10}); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	r := item.Rect().Normalized()
	want := geometry.Rect{X: -20, Y: -10, Width: 20, Height: 10}
	if r != want {
		t.Errorf("inverted rect = %+v, want %+v", r, want)
	}
	if !item.IsValid() {
		t.Error("inverted rect reported invalid")
	}
}

func TestRectShapeHitTesting(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})

	shape := item.Shape()
	if !shape.Contains(geometry.Point{X: 50, Y: 25}) {
		t.Error("interior point not contained (filled rect)")
	}
	if shape.Contains(geometry.Point{X: 200, Y: 25}) {
		t.Error("exterior point reported contained")
	}
}

func TestRectShapeUnfilledExcludesInterior(t *testing.T) {
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})
	item.Style().SetValue(StyleBrushStyle, "none")
	item.Style().SetValue(StylePenWidth, 2.0)

	shape := item.Shape()
	if shape.Contains(geometry.Point{X: 50, Y: 25}) {
		t.Error("interior contained despite brush none")
	}
	if !shape.Contains(geometry.Point{X: 50, Y: 0.5}) {
		t.Error("point on the stroked edge not contained")
	}
}

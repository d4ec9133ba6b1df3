package document

import (
	"testing"

	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

func buildTestScene(t *testing.T) *drawing.Scene {
	t.Helper()
	scene := drawing.NewScene()

	rect := drawing.NewRectItem(nil)
	rect.SetRect(geometry.Rect{Width: 100, Height: 50})
	rect.SetCornerRadii(8, 3)
	rect.Move(geometry.Point{X: 10, Y: 20})
	rect.Style().SetValue(drawing.StylePenColor, "#123456")

	line := drawing.NewLineItem(nil)
	line.SetLine(geometry.Point{}, geometry.Point{X: 40, Y: 0})
	line.Move(geometry.Point{X: 110, Y: 45})

	for _, item := range []drawing.Item{rect, line} {
		if err := scene.AddItem(item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	rect.Points()[3].Connect(line.Points()[0])
	return scene
}

func TestSnapshotBuildSceneRoundTrip(t *testing.T) {
	scene := buildTestScene(t)
	d := Snapshot(scene, NewEmptyDiagram("test"))

	data, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	rebuilt, err := BuildScene(decoded, drawing.NewStyleSheet())
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if got := rebuilt.ItemCount(); got != scene.ItemCount() {
		t.Fatalf("item count = %d, want %d", got, scene.ItemCount())
	}

	for i, orig := range scene.Items() {
		got := rebuilt.Items()[i]
		if got.Base().ID() != orig.Base().ID() {
			t.Errorf("item %d ID = %q, want %q", i, got.Base().ID(), orig.Base().ID())
		}
		if got.Kind() != orig.Kind() {
			t.Errorf("item %d kind = %q, want %q", i, got.Kind(), orig.Kind())
		}
		if !got.Base().Position().Equal(orig.Base().Position()) {
			t.Errorf("item %d position = %v, want %v", i, got.Base().Position(), orig.Base().Position())
		}
		origPoints := orig.Base().Points()
		gotPoints := got.Base().Points()
		if len(gotPoints) != len(origPoints) {
			t.Fatalf("item %d point count = %d, want %d", i, len(gotPoints), len(origPoints))
		}
		for j := range origPoints {
			if !gotPoints[j].Position().Equal(origPoints[j].Position()) {
				t.Errorf("item %d point %d = %v, want %v",
					i, j, gotPoints[j].Position(), origPoints[j].Position())
			}
			if gotPoints[j].Flags() != origPoints[j].Flags() {
				t.Errorf("item %d point %d flags differ", i, j)
			}
		}
	}

	// The connection came back by ID and index.
	rect := rebuilt.Items()[0]
	line := rebuilt.Items()[1]
	if !rect.Base().Points()[3].IsConnectedTo(line.Base().Points()[0]) {
		t.Error("connection not restored")
	}

	// Shape-specific properties survived.
	gotRect, ok := rebuilt.Items()[0].(*drawing.RectItem)
	if !ok {
		t.Fatal("first item is not a rect")
	}
	if gotRect.CornerRadiusX() != 8 || gotRect.CornerRadiusY() != 3 {
		t.Errorf("corner radii = %v/%v, want 8/3",
			gotRect.CornerRadiusX(), gotRect.CornerRadiusY())
	}
	if got := gotRect.Style().Pen().Color; got != "#123456" {
		t.Errorf("pen color = %q, want #123456", got)
	}
}

func TestSnapshotRecordsEachConnectionOnce(t *testing.T) {
	scene := buildTestScene(t)
	d := Snapshot(scene, NewEmptyDiagram("test"))

	if len(d.Connections) != 1 {
		t.Fatalf("connection count = %d, want 1", len(d.Connections))
	}
	conn := d.Connections[0]
	if conn.FromPoint != 3 || conn.ToPoint != 0 {
		t.Errorf("connection = %+v, want point 3 to point 0", conn)
	}
}

func TestSnapshotPreservesTransform(t *testing.T) {
	scene := drawing.NewScene()
	item := drawing.NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 50, Height: 50})
	if err := scene.AddItem(item); err != nil {
		t.Fatal(err)
	}
	if err := item.Rotate(geometry.Point{X: 25, Y: 25}); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	wantMatrix := item.Transform().Matrix()
	wantPos := item.Position()

	d := Snapshot(scene, NewEmptyDiagram("test"))
	rebuilt, err := BuildScene(d, nil)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	got := rebuilt.Items()[0].Base()
	if got.Transform().Matrix() != wantMatrix {
		t.Errorf("matrix = %v, want %v", got.Transform().Matrix(), wantMatrix)
	}
	if got.Position() != wantPos {
		t.Errorf("position = %v, want %v", got.Position(), wantPos)
	}
}

func TestBuildSceneRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		d    *Diagram
	}{
		{
			"unknown kind",
			&Diagram{Items: []ItemRecord{{ID: "item_x", Type: "blob"}}},
		},
		{
			"dangling connection",
			&Diagram{Connections: []ConnectionRecord{{FromItem: "item_missing"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildScene(tt.d, nil); err == nil {
				t.Error("BuildScene accepted bad input")
			}
		})
	}
}

func TestSampleDiagramRoundTrips(t *testing.T) {
	d := SampleDiagram()
	if len(d.Items) != 3 {
		t.Fatalf("sample item count = %d, want 3", len(d.Items))
	}
	if len(d.Connections) != 2 {
		t.Fatalf("sample connection count = %d, want 2", len(d.Connections))
	}

	scene, err := BuildScene(d, drawing.NewStyleSheet())
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	if scene.ItemCount() != 3 {
		t.Errorf("rebuilt item count = %d, want 3", scene.ItemCount())
	}
}

func TestDegenerateItemRoundTrips(t *testing.T) {
	scene := drawing.NewScene()
	rect := drawing.NewRectItem(nil)
	rect.SetRect(geometry.Rect{Width: 100, Height: 50})
	if err := scene.AddItem(rect); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// Collapse the rect while it is in the scene; documents must carry
	// such items and still load back.
	rect.SetRect(geometry.Rect{})
	if rect.IsValid() {
		t.Fatal("rect still valid after collapsing")
	}

	doc := Snapshot(scene, NewEmptyDiagram("Scratch"))
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	loaded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	rebuilt, err := BuildScene(loaded, nil)
	if err != nil {
		t.Fatalf("a saved document failed to load: %v", err)
	}
	if rebuilt.ItemCount() != 1 {
		t.Fatalf("items = %d, want 1", rebuilt.ItemCount())
	}
	if rebuilt.Items()[0].IsValid() {
		t.Error("collapsed item came back valid")
	}
}

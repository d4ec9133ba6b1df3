package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/inklet/inklet/backend-go/internal/document"
	"github.com/inklet/inklet/backend-go/internal/render"
)

func TestLoadSampleAndRender(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadSampleDocument(); err != nil {
		t.Fatalf("LoadSampleDocument: %v", err)
	}

	var commands []render.DrawCommand
	if err := json.Unmarshal([]byte(eng.Render()), &commands); err != nil {
		t.Fatalf("render output is not valid JSON: %v", err)
	}
	if len(commands) != 3 {
		t.Errorf("draw commands = %d, want 3", len(commands))
	}
}

func TestCreateMoveUndo(t *testing.T) {
	eng := NewEngine()

	id, err := eng.CreateItem("rect")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if !strings.HasPrefix(id, "item_") {
		t.Errorf("item id = %q, want item_ prefix", id)
	}

	if err := eng.MoveItem(id, 40, 60); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if !eng.CanUndo() {
		t.Fatal("CanUndo = false after edits")
	}

	if !eng.Undo() {
		t.Fatal("Undo returned false")
	}
	if !eng.CanRedo() {
		t.Error("CanRedo = false after undo")
	}
}

func TestGetDocumentRoundTrips(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadSampleDocument(); err != nil {
		t.Fatalf("LoadSampleDocument: %v", err)
	}

	doc, err := document.Unmarshal([]byte(eng.GetDocument()))
	if err != nil {
		t.Fatalf("GetDocument output is not a valid diagram: %v", err)
	}
	if len(doc.Items) != 3 {
		t.Errorf("items = %d, want 3", len(doc.Items))
	}
	if len(doc.Connections) != 2 {
		t.Errorf("connections = %d, want 2", len(doc.Connections))
	}
}

func TestHitTestMissesEmptyCanvas(t *testing.T) {
	eng := NewEngine()
	if got := eng.HitTest(10, 10); got != "" {
		t.Errorf("HitTest on empty scene = %q, want empty", got)
	}
}

func TestUnknownItemErrors(t *testing.T) {
	eng := NewEngine()
	if err := eng.MoveItem("item_missing", 0, 0); err == nil {
		t.Fatal("expected error for unknown item")
	}
	if _, err := eng.CreateItem("blob"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestCreateItemSeedsValidGeometry(t *testing.T) {
	eng := NewEngine()
	for _, kind := range []string{"line", "rect", "ellipse", "polygon", "polyline"} {
		t.Run(kind, func(t *testing.T) {
			if _, err := eng.CreateItem(kind); err != nil {
				t.Fatalf("CreateItem(%q): %v", kind, err)
			}
		})
	}
}

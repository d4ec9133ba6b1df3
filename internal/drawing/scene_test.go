package drawing

import (
	"errors"
	"testing"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

func validRect(t *testing.T) *RectItem {
	t.Helper()
	item := NewRectItem(nil)
	item.SetRect(geometry.Rect{Width: 100, Height: 50})
	return item
}

func TestSceneRejectsInvalidItem(t *testing.T) {
	scene := NewScene()
	if err := scene.AddItem(NewRectItem(nil)); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("AddItem(zero-size rect) error = %v, want ErrInvalidItem", err)
	}
	if err := scene.AddItem(nil); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("AddItem(nil) error = %v, want ErrInvalidItem", err)
	}
}

func TestSceneRejectsAttachedItem(t *testing.T) {
	scene := NewScene()
	item := validRect(t)
	if err := scene.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := scene.AddItem(item); !errors.Is(err, ErrItemAttached) {
		t.Errorf("second AddItem error = %v, want ErrItemAttached", err)
	}

	other := NewScene()
	if err := other.AddItem(item); !errors.Is(err, ErrItemAttached) {
		t.Errorf("AddItem to second scene error = %v, want ErrItemAttached", err)
	}
}

func TestSceneRemoveDetaches(t *testing.T) {
	scene := NewScene()
	item := validRect(t)
	if err := scene.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if index := scene.RemoveItem(item); index != 0 {
		t.Errorf("RemoveItem index = %d, want 0", index)
	}
	if item.Scene() != nil {
		t.Error("removed item still claims the scene")
	}
	if index := scene.RemoveItem(item); index != -1 {
		t.Errorf("second RemoveItem index = %d, want -1", index)
	}

	// A detached item may rejoin.
	if err := scene.AddItem(item); err != nil {
		t.Errorf("re-adding a removed item: %v", err)
	}
}

func TestSceneFindItem(t *testing.T) {
	scene := NewScene()
	item := validRect(t)
	if err := scene.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if got := scene.FindItem(item.ID()); got != Item(item) {
		t.Error("FindItem did not return the added item")
	}
	if got := scene.FindItem("item_nope"); got != nil {
		t.Error("FindItem returned an item for an unknown ID")
	}
}

func TestSceneItemsAtFrontFirst(t *testing.T) {
	scene := NewScene()
	back := validRect(t)
	front := validRect(t)
	front.Move(geometry.Point{X: 10, Y: 10})
	if err := scene.AddItem(back); err != nil {
		t.Fatal(err)
	}
	if err := scene.AddItem(front); err != nil {
		t.Fatal(err)
	}

	hits := scene.ItemsAt(geometry.Point{X: 50, Y: 30})
	if len(hits) != 2 {
		t.Fatalf("hit count = %d, want 2", len(hits))
	}
	if hits[0] != Item(front) || hits[1] != Item(back) {
		t.Error("hits not ordered front-most first")
	}

	front.SetVisible(false)
	hits = scene.ItemsAt(geometry.Point{X: 50, Y: 30})
	if len(hits) != 1 || hits[0] != Item(back) {
		t.Error("hidden item still hit")
	}
}

func TestCopyItemsPreservesInternalConnections(t *testing.T) {
	a := NewLineItem(nil)
	a.SetLine(geometry.Point{}, geometry.Point{X: 10, Y: 0})
	b := NewLineItem(nil)
	b.SetLine(geometry.Point{}, geometry.Point{X: 0, Y: 10})
	outsider := NewLineItem(nil)
	outsider.SetLine(geometry.Point{}, geometry.Point{X: 1, Y: 1})

	a.Points()[1].Connect(b.Points()[0])
	a.Points()[0].Connect(outsider.Points()[0])

	copies := CopyItems([]Item{a, b})
	if len(copies) != 2 {
		t.Fatalf("copy count = %d, want 2", len(copies))
	}

	ca, cb := copies[0], copies[1]
	if !ca.Base().Points()[1].IsConnectedTo(cb.Base().Points()[0]) {
		t.Error("in-set connection not reproduced between copies")
	}
	if len(ca.Base().Points()[0].Connections()) != 0 {
		t.Error("connection to an item outside the set was carried over")
	}
	// Originals are untouched.
	if !a.Points()[1].IsConnectedTo(b.Points()[0]) {
		t.Error("copying disturbed the original connection")
	}
}

func TestRestoreItemBypassesValidityGate(t *testing.T) {
	scene := NewScene()
	item := NewRectItem(nil) // zero-size, fails the user-intent gate

	if err := scene.AddItem(item); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("AddItem(degenerate) error = %v, want ErrInvalidItem", err)
	}
	if err := scene.RestoreItem(0, item); err != nil {
		t.Fatalf("RestoreItem(degenerate): %v", err)
	}
	if scene.ItemCount() != 1 {
		t.Fatalf("items = %d, want 1", scene.ItemCount())
	}
	if item.Scene() != scene {
		t.Error("restored item has no scene back-reference")
	}

	if err := scene.RestoreItem(0, nil); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("RestoreItem(nil) error = %v, want ErrInvalidItem", err)
	}
	if err := scene.RestoreItem(0, item); !errors.Is(err, ErrItemAttached) {
		t.Errorf("RestoreItem(attached) error = %v, want ErrItemAttached", err)
	}
}

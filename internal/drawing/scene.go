package drawing

import (
	"errors"
	"slices"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

var (
	// ErrInvalidItem is returned when an item with no positive extent is
	// offered to a scene.
	ErrInvalidItem = errors.New("drawing: item is not valid")
	// ErrItemAttached is returned when an item already belonging to a
	// scene is offered again.
	ErrItemAttached = errors.New("drawing: item already belongs to a scene")
)

// Scene is an ordered collection of items. Order is paint order: index 0
// is painted first and therefore sits at the back.
type Scene struct {
	items []Item
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Items returns the scene's items in paint order.
func (s *Scene) Items() []Item {
	return s.items
}

// ItemCount returns the number of items in the scene.
func (s *Scene) ItemCount() int {
	return len(s.items)
}

// AddItem appends an item at the front of the paint order.
func (s *Scene) AddItem(item Item) error {
	return s.InsertItem(len(s.items), item)
}

// InsertItem inserts an item at the given paint-order index. Invalid
// items and items already attached to a scene are rejected. The validity
// gate applies to user-intent insertion only; reconstruction paths use
// RestoreItem instead.
func (s *Scene) InsertItem(index int, item Item) error {
	if item == nil || !item.IsValid() {
		return ErrInvalidItem
	}
	return s.RestoreItem(index, item)
}

// RestoreItem inserts an item without the validity gate. An item may
// legally degenerate while in the scene (a resize can collapse it), so
// undo and document loading must be able to put it back exactly as it
// was; only nil and already-attached items are rejected.
func (s *Scene) RestoreItem(index int, item Item) error {
	if item == nil {
		return ErrInvalidItem
	}
	if item.Base().Scene() != nil {
		return ErrItemAttached
	}
	s.restoreItem(index, item)
	return nil
}

func (s *Scene) restoreItem(index int, item Item) {
	index = max(0, min(index, len(s.items)))
	s.items = slices.Insert(s.items, index, item)
	item.Base().scene = s
}

// RemoveItem detaches an item from the scene and returns the paint-order
// index it held, or -1 if the item was not in the scene. The item's
// points and connections are untouched; the Editor severs connections
// before removal so undo can restore them.
func (s *Scene) RemoveItem(item Item) int {
	index := slices.Index(s.items, item)
	if index < 0 {
		return -1
	}
	s.items = slices.Delete(s.items, index, index+1)
	item.Base().scene = nil
	return index
}

// ItemIndex returns the paint-order index of an item, or -1.
func (s *Scene) ItemIndex(item Item) int {
	return slices.Index(s.items, item)
}

// FindItem returns the item with the given ID, or nil.
func (s *Scene) FindItem(id string) Item {
	for _, item := range s.items {
		if item.Base().ID() == id {
			return item
		}
	}
	return nil
}

// ItemsAt returns all items whose shape contains the given scene
// position, front-most first.
func (s *Scene) ItemsAt(scenePos geometry.Point) []Item {
	var hits []Item
	for i := len(s.items) - 1; i >= 0; i-- {
		item := s.items[i]
		if !item.Base().IsVisible() {
			continue
		}
		local, err := item.Base().MapFromScene(scenePos)
		if err != nil {
			continue
		}
		if !item.BoundingRect().Contains(local) {
			continue
		}
		if item.Shape().Contains(local) {
			hits = append(hits, item)
		}
	}
	return hits
}

// CopyItems deep-copies the given items. Connections between points of
// copied items are reproduced between the corresponding copies;
// connections leading outside the set are dropped.
func CopyItems(items []Item) []Item {
	copies := make([]Item, len(items))
	for i, item := range items {
		copies[i] = item.Copy()
	}

	// Map each original point to its copy by (item index, point index).
	pointCopy := make(map[*ItemPoint]*ItemPoint)
	for i, item := range items {
		srcPoints := item.Base().Points()
		dstPoints := copies[i].Base().Points()
		for j := range srcPoints {
			if j < len(dstPoints) {
				pointCopy[srcPoints[j]] = dstPoints[j]
			}
		}
	}

	for _, item := range items {
		for _, p := range item.Base().Points() {
			for _, q := range p.Connections() {
				pc, qc := pointCopy[p], pointCopy[q]
				if pc != nil && qc != nil {
					pc.Connect(qc)
				}
			}
		}
	}
	return copies
}

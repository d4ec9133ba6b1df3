// Package engine is the facade the wasm build exposes to the frontend.
// It owns one diagram editor and answers string-based JSON queries, so
// the js bindings stay thin.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/inklet/inklet/backend-go/internal/document"
	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/render"
)

type Engine struct {
	editor *drawing.Editor
	meta   *document.Diagram

	// Selection state (backend owns this)
	selection []string
}

func NewEngine() *Engine {
	return &Engine{
		editor: drawing.NewEditor(drawing.DefaultUndoDepth),
		meta:   document.NewEmptyDiagram("Untitled"),
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument replaces the current diagram with one parsed from JSON.
// Edit history and selection are reset.
func (e *Engine) LoadDocument(jsonData string) error {
	doc, err := document.Unmarshal([]byte(jsonData))
	if err != nil {
		return err
	}
	scene, err := document.BuildScene(doc, e.editor.Sheet())
	if err != nil {
		return err
	}
	e.editor.SetScene(scene)
	e.meta = doc
	e.selection = nil
	return nil
}

// NewDocument resets the engine to an empty diagram with the given name.
func (e *Engine) NewDocument(name string) {
	e.editor.SetScene(drawing.NewScene())
	e.meta = document.NewEmptyDiagram(name)
	e.selection = nil
}

// LoadSampleDocument loads the built-in sample diagram.
func (e *Engine) LoadSampleDocument() error {
	doc := document.SampleDiagram()
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	return e.LoadDocument(string(data))
}

// CreateItem adds a new item of the given kind and returns its ID. Fresh
// constructors yield zero-extent items the scene would reject, so each
// kind gets a starter geometry; the caller resizes from there.
func (e *Engine) CreateItem(kind string) (string, error) {
	item, err := e.editor.CreateItem(kind)
	if err != nil {
		return "", err
	}
	seedGeometry(item)
	if err := e.editor.AddItem(item); err != nil {
		return "", err
	}
	return item.Base().ID(), nil
}

func seedGeometry(item drawing.Item) {
	box := geometry.Rect{Width: 120, Height: 80}
	switch it := item.(type) {
	case *drawing.LineItem:
		it.SetLine(geometry.Point{}, geometry.Point{X: 120, Y: 80})
	case *drawing.RectItem:
		it.SetRect(box)
	case *drawing.EllipseItem:
		it.SetEllipse(box)
	case *drawing.PolygonItem:
		it.SetPolygon(geometry.Polygon{{X: 60, Y: 0}, {X: 120, Y: 80}, {X: 0, Y: 80}})
	case *drawing.PolylineItem:
		it.SetPolyline([]geometry.Point{{X: 0, Y: 80}, {X: 60, Y: 0}, {X: 120, Y: 80}})
	}
}

func (e *Engine) DeleteItem(id string) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	return e.editor.DeleteItem(item)
}

func (e *Engine) MoveItem(id string, x, y float64) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	return e.editor.MoveItem(item, geometry.Point{X: x, Y: y})
}

func (e *Engine) ResizeItem(id string, pointIndex int, x, y float64) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	points := item.Base().Points()
	if pointIndex < 0 || pointIndex >= len(points) {
		return fmt.Errorf("item %s has no point %d", id, pointIndex)
	}
	return e.editor.ResizeItem(item, points[pointIndex], geometry.Point{X: x, Y: y})
}

func (e *Engine) RotateItem(id string, x, y float64) error {
	return e.gesture(id, x, y, e.editor.RotateItem)
}

func (e *Engine) RotateBackItem(id string, x, y float64) error {
	return e.gesture(id, x, y, e.editor.RotateBackItem)
}

func (e *Engine) FlipItemHorizontal(id string, x, y float64) error {
	return e.gesture(id, x, y, e.editor.FlipItemHorizontal)
}

func (e *Engine) FlipItemVertical(id string, x, y float64) error {
	return e.gesture(id, x, y, e.editor.FlipItemVertical)
}

// InsertPoint adds a point to the item at the given scene position and
// returns the new point's index.
func (e *Engine) InsertPoint(id string, x, y float64) (int, error) {
	item, err := e.findItem(id)
	if err != nil {
		return -1, err
	}
	point, err := e.editor.InsertItemPoint(item, geometry.Point{X: x, Y: y})
	if err != nil {
		return -1, err
	}
	for i, p := range item.Base().Points() {
		if p == point {
			return i, nil
		}
	}
	return -1, nil
}

func (e *Engine) RemovePoint(id string, x, y float64) error {
	return e.gesture(id, x, y, e.editor.RemoveItemPoint)
}

func (e *Engine) ConnectPoints(id string, pointIndex int, peerID string, peerIndex int) error {
	a, b, err := e.resolveEnds(id, pointIndex, peerID, peerIndex)
	if err != nil {
		return err
	}
	return e.editor.ConnectPoints(a, b)
}

func (e *Engine) DisconnectPoints(id string, pointIndex int, peerID string, peerIndex int) error {
	a, b, err := e.resolveEnds(id, pointIndex, peerID, peerIndex)
	if err != nil {
		return err
	}
	return e.editor.DisconnectPoints(a, b)
}

// SetProperty sets one style property. The value arrives as JSON so the
// js boundary stays string-typed.
func (e *Engine) SetProperty(id, key, valueJSON string) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
		return fmt.Errorf("invalid property value: %w", err)
	}
	return e.editor.SetItemProperty(item, key, value)
}

func (e *Engine) SetVisible(id string, visible bool) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	return e.editor.SetItemVisible(item, visible)
}

func (e *Engine) Undo() bool { return e.editor.Undo() }
func (e *Engine) Redo() bool { return e.editor.Redo() }

// SetSelection sets the selected item IDs, mirroring the flag onto the
// items themselves.
func (e *Engine) SetSelection(ids []string) {
	for _, id := range e.selection {
		if item := e.editor.Scene().FindItem(id); item != nil {
			item.Base().SetSelected(false)
		}
	}
	e.selection = ids
	for _, id := range ids {
		if item := e.editor.Scene().FindItem(id); item != nil {
			item.Base().SetSelected(true)
		}
	}
}

// --- Queries (frontend ← backend) ---

// Render compiles the scene into draw commands and returns them as JSON.
func (e *Engine) Render() string {
	commands := render.Compile(e.editor.Scene())
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// HitTest returns the topmost item ID at the given scene position, or
// an empty string.
func (e *Engine) HitTest(x, y float64) string {
	return render.HitTest(e.editor.Scene(), geometry.Point{X: x, Y: y})
}

// GetSelectionBounds returns the selection's scene bounding box as JSON.
func (e *Engine) GetSelectionBounds() string {
	items := make([]drawing.Item, 0, len(e.selection))
	for _, id := range e.selection {
		if item := e.editor.Scene().FindItem(id); item != nil {
			items = append(items, item)
		}
	}
	bounds := render.SelectionBounds(items)
	data, _ := json.Marshal(bounds)
	return string(data)
}

// GetDocument snapshots the scene and returns the diagram as JSON.
func (e *Engine) GetDocument() string {
	doc := document.Snapshot(e.editor.Scene(), e.meta)
	data, err := doc.Marshal()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

func (e *Engine) CanUndo() bool { return e.editor.Stack().CanUndo() }
func (e *Engine) CanRedo() bool { return e.editor.Stack().CanRedo() }

func (e *Engine) UndoLabel() string { return e.editor.Stack().UndoLabel() }
func (e *Engine) RedoLabel() string { return e.editor.Stack().RedoLabel() }

func (e *Engine) gesture(id string, x, y float64, apply func(drawing.Item, geometry.Point) error) error {
	item, err := e.findItem(id)
	if err != nil {
		return err
	}
	return apply(item, geometry.Point{X: x, Y: y})
}

func (e *Engine) resolveEnds(id string, pointIndex int, peerID string, peerIndex int) (*drawing.ItemPoint, *drawing.ItemPoint, error) {
	item, err := e.findItem(id)
	if err != nil {
		return nil, nil, err
	}
	peer, err := e.findItem(peerID)
	if err != nil {
		return nil, nil, err
	}
	points := item.Base().Points()
	if pointIndex < 0 || pointIndex >= len(points) {
		return nil, nil, fmt.Errorf("item %s has no point %d", id, pointIndex)
	}
	peerPoints := peer.Base().Points()
	if peerIndex < 0 || peerIndex >= len(peerPoints) {
		return nil, nil, fmt.Errorf("item %s has no point %d", peerID, peerIndex)
	}
	return points[pointIndex], peerPoints[peerIndex], nil
}

func (e *Engine) findItem(id string) (drawing.Item, error) {
	item := e.editor.Scene().FindItem(id)
	if item == nil {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return item, nil
}

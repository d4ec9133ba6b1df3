package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inklet/inklet/backend-go/internal/document"
	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

var (
	errMissingPosition = errors.New("operation is missing x/y")
	errNothingToUndo   = errors.New("nothing to undo")
	errNothingToRedo   = errors.New("nothing to redo")
)

// applyLocked runs one operation against the room's editor. Caller holds
// the room lock.
func (r *Room) applyLocked(op Operation) error {
	switch op.Type {
	case OpItemCreate:
		return r.applyCreate(op)
	case OpItemDelete:
		item, err := r.findItem(op.ItemID)
		if err != nil {
			return err
		}
		return r.editor.DeleteItem(item)
	case OpItemMove:
		return r.applyGesture(op, r.editor.MoveItem)
	case OpItemResize:
		return r.applyResize(op)
	case OpItemRotate:
		return r.applyGesture(op, r.editor.RotateItem)
	case OpItemRotateBack:
		return r.applyGesture(op, r.editor.RotateBackItem)
	case OpItemFlipH:
		return r.applyGesture(op, r.editor.FlipItemHorizontal)
	case OpItemFlipV:
		return r.applyGesture(op, r.editor.FlipItemVertical)
	case OpItemPointInsert:
		item, pos, err := r.gestureArgs(op)
		if err != nil {
			return err
		}
		_, err = r.editor.InsertItemPoint(item, pos)
		return err
	case OpItemPointRemove:
		return r.applyGesture(op, r.editor.RemoveItemPoint)
	case OpItemConnect, OpItemDisconnect:
		a, b, err := r.connectionEnds(op)
		if err != nil {
			return err
		}
		if op.Type == OpItemConnect {
			return r.editor.ConnectPoints(a, b)
		}
		return r.editor.DisconnectPoints(a, b)
	case OpItemProperty:
		item, err := r.findItem(op.ItemID)
		if err != nil {
			return err
		}
		return r.editor.SetItemProperty(item, op.Key, op.Value)
	case OpItemVisibility:
		item, err := r.findItem(op.ItemID)
		if err != nil {
			return err
		}
		if op.Visible == nil {
			return errors.New("operation is missing visible")
		}
		return r.editor.SetItemVisible(item, *op.Visible)
	case OpDiagramUpdate:
		return r.applyDiagramUpdate(op)
	case OpEditUndo:
		if !r.editor.Undo() {
			return errNothingToUndo
		}
		return nil
	case OpEditRedo:
		if !r.editor.Redo() {
			return errNothingToRedo
		}
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (r *Room) applyCreate(op Operation) error {
	if op.Item == nil {
		return errors.New("operation is missing item")
	}
	item, err := document.BuildItem(*op.Item, r.editor.Sheet())
	if err != nil {
		return fmt.Errorf("build item: %w", err)
	}
	return r.editor.AddItem(item)
}

func (r *Room) applyResize(op Operation) error {
	item, pos, err := r.gestureArgs(op)
	if err != nil {
		return err
	}
	if op.PointIndex == nil {
		return errors.New("operation is missing pointIndex")
	}
	point, err := pointAt(item, *op.PointIndex)
	if err != nil {
		return err
	}
	return r.editor.ResizeItem(item, point, pos)
}

func (r *Room) applyGesture(op Operation, gesture func(drawing.Item, geometry.Point) error) error {
	item, pos, err := r.gestureArgs(op)
	if err != nil {
		return err
	}
	return gesture(item, pos)
}

func (r *Room) applyDiagramUpdate(op Operation) error {
	var changes DiagramChanges
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid diagram changes: %w", err)
	}
	if changes.Name != nil {
		r.meta.Name = *changes.Name
	}
	if changes.Width != nil {
		r.meta.Width = *changes.Width
	}
	if changes.Height != nil {
		r.meta.Height = *changes.Height
	}
	if changes.Background != nil {
		r.meta.Background = *changes.Background
	}
	return nil
}

func (r *Room) gestureArgs(op Operation) (drawing.Item, geometry.Point, error) {
	item, err := r.findItem(op.ItemID)
	if err != nil {
		return nil, geometry.Point{}, err
	}
	if op.X == nil || op.Y == nil {
		return nil, geometry.Point{}, errMissingPosition
	}
	return item, geometry.Point{X: *op.X, Y: *op.Y}, nil
}

func (r *Room) connectionEnds(op Operation) (*drawing.ItemPoint, *drawing.ItemPoint, error) {
	if op.PointIndex == nil || op.PeerPointIndex == nil {
		return nil, nil, errors.New("operation is missing point indexes")
	}
	item, err := r.findItem(op.ItemID)
	if err != nil {
		return nil, nil, err
	}
	a, err := pointAt(item, *op.PointIndex)
	if err != nil {
		return nil, nil, err
	}
	peer, err := r.findItem(op.PeerItemID)
	if err != nil {
		return nil, nil, err
	}
	b, err := pointAt(peer, *op.PeerPointIndex)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (r *Room) findItem(id string) (drawing.Item, error) {
	if id == "" {
		return nil, errors.New("operation is missing itemId")
	}
	item := r.editor.Scene().FindItem(id)
	if item == nil {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return item, nil
}

func pointAt(item drawing.Item, index int) (*drawing.ItemPoint, error) {
	points := item.Base().Points()
	if index < 0 || index >= len(points) {
		return nil, fmt.Errorf("item %s has no point %d", item.Base().ID(), index)
	}
	return points[index], nil
}

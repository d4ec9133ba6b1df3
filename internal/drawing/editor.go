package drawing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

var (
	// ErrIntentNotAllowed is returned when an item's flags forbid the
	// requested gesture.
	ErrIntentNotAllowed = errors.New("drawing: item flags do not allow this intent")
	// ErrPointNotOwned is returned when a gesture names a point that does
	// not belong to the gesture's item.
	ErrPointNotOwned = errors.New("drawing: point does not belong to item")
	// ErrPointLimit is returned when a structural edit would violate the
	// shape's point-count minimum or no insertion site exists.
	ErrPointLimit = errors.New("drawing: shape refuses the point edit")
	// ErrNotConnectable is returned when a connection gesture names a
	// point without the connection capability.
	ErrNotConnectable = errors.New("drawing: point does not accept connections")
	// ErrUnknownProperty is returned when a property gesture names a key
	// the item does not expose.
	ErrUnknownProperty = errors.New("drawing: unknown property")
	// ErrUnknownKind is returned when an item factory call names an
	// unrecognized shape kind.
	ErrUnknownKind = errors.New("drawing: unknown item kind")
)

// NewItem constructs a fresh item of the given kind, seeded from sheet.
func NewItem(kind string, sheet *StyleSheet) (Item, error) {
	switch kind {
	case KindLine:
		return NewLineItem(sheet), nil
	case KindRect:
		return NewRectItem(sheet), nil
	case KindEllipse:
		return NewEllipseItem(sheet), nil
	case KindPolygon:
		return NewPolygonItem(sheet), nil
	case KindPolyline:
		return NewPolylineItem(sheet), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Editor owns a scene, its undo history, and the style sheet new items
// are seeded from. Every mutation goes through a gesture method here:
// the gesture checks the item's flags, performs the mutation, settles
// connected points, and pushes one command covering the whole effect.
type Editor struct {
	scene *Scene
	stack *CommandStack
	sheet *StyleSheet
}

// NewEditor creates an editor around an empty scene with the given undo
// depth (non-positive means DefaultUndoDepth).
func NewEditor(undoDepth int) *Editor {
	return &Editor{
		scene: NewScene(),
		stack: NewCommandStack(undoDepth),
		sheet: NewStyleSheet(),
	}
}

// Scene returns the editor's scene.
func (e *Editor) Scene() *Scene {
	return e.scene
}

// Stack returns the editor's undo history.
func (e *Editor) Stack() *CommandStack {
	return e.stack
}

// Sheet returns the style sheet new items are seeded from.
func (e *Editor) Sheet() *StyleSheet {
	return e.sheet
}

// SetScene replaces the editor's scene and clears the undo history.
// Used when a document is (re)loaded.
func (e *Editor) SetScene(scene *Scene) {
	if scene == nil {
		scene = NewScene()
	}
	e.scene = scene
	e.stack.Clear()
}

// CreateItem constructs an item of the given kind seeded from the
// editor's sheet. The item is not added to the scene.
func (e *Editor) CreateItem(kind string) (Item, error) {
	return NewItem(kind, e.sheet)
}

// AddItem inserts an item at the front of the paint order.
func (e *Editor) AddItem(item Item) error {
	index := e.scene.ItemCount()
	if err := e.scene.InsertItem(index, item); err != nil {
		return err
	}
	e.stack.Push(&addItemCommand{scene: e.scene, item: item, index: index})
	return nil
}

// DeleteItem severs all of the item's connections and removes it from
// the scene. One undo restores both.
func (e *Editor) DeleteItem(item Item) error {
	if item.Base().Flags()&CanDelete == 0 {
		return ErrIntentNotAllowed
	}

	var severed []pointPair
	for _, p := range item.Base().Points() {
		for _, q := range p.DisconnectAll() {
			severed = append(severed, pointPair{a: p, b: q})
		}
	}

	index := e.scene.RemoveItem(item)
	if index < 0 {
		for _, pair := range severed {
			pair.a.Connect(pair.b)
		}
		return ErrInvalidItem
	}
	e.stack.Push(&removeItemCommand{
		scene:       e.scene,
		item:        item,
		index:       index,
		connections: severed,
	})
	return nil
}

// MoveItem moves an item to the given scene position and settles any
// connected points on other items.
func (e *Editor) MoveItem(item Item, scenePos geometry.Point) error {
	if item.Base().Flags()&CanMove == 0 {
		return ErrIntentNotAllowed
	}
	oldPos := item.Base().Position()
	item.Move(scenePos)

	cmds := []Command{&positionChangeCommand{item: item, oldPos: oldPos, newPos: scenePos}}
	cmds = append(cmds, e.settleConnections(item)...)
	e.push("move "+item.Kind(), cmds)
	return nil
}

// ResizeItem drags one of the item's control points to the given scene
// position and settles any connected points on other items.
func (e *Editor) ResizeItem(item Item, point *ItemPoint, scenePos geometry.Point) error {
	if item.Base().Flags()&CanResize == 0 {
		return ErrIntentNotAllowed
	}
	if !slices.Contains(item.Base().Points(), point) {
		return ErrPointNotOwned
	}

	before := captureGeometry(item)
	if err := item.Resize(point, scenePos); err != nil {
		return err
	}
	cmds := []Command{&geometryChangeCommand{item: item, before: before, after: captureGeometry(item)}}
	cmds = append(cmds, e.settleConnections(item)...)
	e.push("resize "+item.Kind(), cmds)
	return nil
}

// RotateItem rotates the item a quarter turn clockwise about the given
// scene position.
func (e *Editor) RotateItem(item Item, scenePos geometry.Point) error {
	return e.transformGesture(item, scenePos, CanRotate, "rotate", Item.Rotate)
}

// RotateBackItem rotates the item a quarter turn counter-clockwise about
// the given scene position. It is the exact inverse of RotateItem at the
// same center.
func (e *Editor) RotateBackItem(item Item, scenePos geometry.Point) error {
	return e.transformGesture(item, scenePos, CanRotate, "rotate back", Item.RotateBack)
}

// FlipItemHorizontal mirrors the item about the vertical axis through
// the given scene position.
func (e *Editor) FlipItemHorizontal(item Item, scenePos geometry.Point) error {
	return e.transformGesture(item, scenePos, CanFlip, "flip", Item.FlipHorizontal)
}

// FlipItemVertical mirrors the item about the horizontal axis through
// the given scene position.
func (e *Editor) FlipItemVertical(item Item, scenePos geometry.Point) error {
	return e.transformGesture(item, scenePos, CanFlip, "flip", Item.FlipVertical)
}

func (e *Editor) transformGesture(item Item, scenePos geometry.Point, required ItemFlags,
	label string, apply func(Item, geometry.Point) error) error {

	if item.Base().Flags()&required == 0 {
		return ErrIntentNotAllowed
	}
	oldPos := item.Base().Position()
	oldMatrix := item.Base().Transform().Matrix()
	if err := apply(item, scenePos); err != nil {
		return err
	}
	cmds := []Command{&transformChangeCommand{
		item:      item,
		oldPos:    oldPos,
		newPos:    item.Base().Position(),
		oldMatrix: oldMatrix,
		newMatrix: item.Base().Transform().Matrix(),
		label:     label,
	}}
	cmds = append(cmds, e.settleConnections(item)...)
	e.push(label+" "+item.Kind(), cmds)
	return nil
}

// InsertItemPoint asks the item for an insertion site near the given
// scene position and inserts a new point there.
func (e *Editor) InsertItemPoint(item Item, scenePos geometry.Point) (*ItemPoint, error) {
	if item.Base().Flags()&CanInsertPoints == 0 {
		return nil, ErrIntentNotAllowed
	}
	local, err := item.Base().MapFromScene(scenePos)
	if err != nil {
		return nil, err
	}
	point, index := item.ItemPointToInsert(local)
	if point == nil {
		return nil, ErrPointLimit
	}
	item.Base().InsertPoint(index, point)
	e.push("insert point", []Command{&pointInsertCommand{item: item, point: point, index: index}})
	return point, nil
}

// RemoveItemPoint asks the item for a removable point near the given
// scene position and removes it, severing its connections.
func (e *Editor) RemoveItemPoint(item Item, scenePos geometry.Point) error {
	if item.Base().Flags()&CanRemovePoints == 0 {
		return ErrIntentNotAllowed
	}
	local, err := item.Base().MapFromScene(scenePos)
	if err != nil {
		return err
	}
	point := item.ItemPointToRemove(local)
	if point == nil {
		return ErrPointLimit
	}
	index, peers := item.Base().RemovePoint(point)
	e.push("remove point", []Command{&pointRemoveCommand{
		item:  item,
		point: point,
		index: index,
		peers: peers,
	}})
	return nil
}

// ConnectPoints connects two points on different items. Neither point
// moves; co-location is restored by the next geometry gesture on either
// item. Connecting an already-connected pair is a no-op that records no
// command.
func (e *Editor) ConnectPoints(a, b *ItemPoint) error {
	if a == nil || b == nil || !a.IsConnection() || !b.IsConnection() {
		return ErrNotConnectable
	}
	if a == b || a.Item() == b.Item() {
		return ErrNotConnectable
	}
	if a.IsConnectedTo(b) {
		return nil
	}
	a.Connect(b)
	e.push("connect points", []Command{&connectCommand{a: a, b: b}})
	return nil
}

// DisconnectPoints severs the connection between two points.
// Disconnecting points that are not connected is a no-op that records no
// command.
func (e *Editor) DisconnectPoints(a, b *ItemPoint) error {
	if a == nil || b == nil {
		return ErrNotConnectable
	}
	if !a.IsConnectedTo(b) {
		return nil
	}
	a.Disconnect(b)
	e.push("disconnect points", []Command{&disconnectCommand{a: a, b: b}})
	return nil
}

// SetItemProperty changes one property by key. The key must be one the
// item currently exposes through Properties.
func (e *Editor) SetItemProperty(item Item, key string, value any) error {
	old, ok := item.Properties()[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, key)
	}
	item.SetProperties(map[string]any{key: value})
	e.push("change "+key, []Command{&propertyChangeCommand{
		item:     item,
		key:      key,
		oldValue: old,
		newValue: value,
	}})
	return nil
}

// SetItemVisible shows or hides an item. Setting the current state
// records no command.
func (e *Editor) SetItemVisible(item Item, visible bool) error {
	if item.Base().Flags()&CanHide == 0 {
		return ErrIntentNotAllowed
	}
	if item.Base().IsVisible() == visible {
		return nil
	}
	item.Base().SetVisible(visible)
	e.push("set visibility", []Command{&visibilityCommand{item: item, visible: visible}})
	return nil
}

// Undo reverses the most recent gesture. It reports false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	return e.stack.Undo()
}

// Redo re-applies the most recently undone gesture. It reports false
// when there is nothing to redo.
func (e *Editor) Redo() bool {
	return e.stack.Redo()
}

// push wraps a gesture's commands into the undo history. A single
// command is pushed as-is; several are grouped so one undo reverses the
// whole gesture.
func (e *Editor) push(label string, cmds []Command) {
	switch len(cmds) {
	case 0:
	case 1:
		e.stack.Push(cmds[0])
	default:
		e.stack.Push(&compositeCommand{label: label, children: cmds})
	}
}

// settleConnections restores co-location for every connection reachable
// from the moved item: each connected peer point is brought back to the
// scene position of its counterpart. Resizable peers are resized by
// their control point; otherwise the whole peer item moves. Peers that
// allow neither stay put and the connection is left stretched.
//
// Settling a peer changes its geometry (a resize drags that item's
// follower points too), so settled items join a worklist and their own
// connections are settled in turn, until no connection diverges. Each
// item is settled at most once, which also breaks connection cycles.
func (e *Editor) settleConnections(item Item) []Command {
	var cmds []Command
	queue := []Item{item}
	settled := map[Item]bool{item: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, p := range cur.Base().Points() {
			if !p.IsConnection() {
				continue
			}
			target := cur.Base().MapToScene(p.Position())
			for _, q := range p.Connections() {
				peer := q.Item()
				if peer == nil || peer == cur || settled[peer] {
					continue
				}
				current := peer.Base().MapToScene(q.Position())
				if current.Equal(target) {
					continue
				}

				switch {
				case peer.Base().Flags()&CanResize != 0 && q.IsControl():
					before := captureGeometry(peer)
					if err := peer.Resize(q, target); err != nil {
						continue
					}
					cmds = append(cmds, &geometryChangeCommand{
						item:   peer,
						before: before,
						after:  captureGeometry(peer),
					})
				case peer.Base().Flags()&CanMove != 0:
					oldPos := peer.Base().Position()
					newPos := oldPos.Add(target.Sub(current))
					peer.Move(newPos)
					cmds = append(cmds, &positionChangeCommand{item: peer, oldPos: oldPos, newPos: newPos})
				default:
					continue
				}

				settled[peer] = true
				queue = append(queue, peer)
			}
		}
	}
	return cmds
}

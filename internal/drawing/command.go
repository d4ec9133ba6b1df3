package drawing

import (
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// Command is a reversible scene mutation. Commands carry before and after
// snapshots of the state they touch: the Editor performs the mutation
// first, captures both sides, and pushes the command without executing it.
// Apply is only invoked on redo, Undo on undo, and the stack's cursor
// discipline guarantees the scene is in the matching state when either
// runs.
type Command interface {
	Apply()
	Undo()
	Label() string
}

type positionChangeCommand struct {
	item   Item
	oldPos geometry.Point
	newPos geometry.Point
}

func (c *positionChangeCommand) Apply() { c.item.Move(c.newPos) }
func (c *positionChangeCommand) Undo()  { c.item.Move(c.oldPos) }
func (c *positionChangeCommand) Label() string {
	return "move " + c.item.Kind()
}

type transformChangeCommand struct {
	item      Item
	oldPos    geometry.Point
	newPos    geometry.Point
	oldMatrix geometry.Matrix2D
	newMatrix geometry.Matrix2D
	label     string
}

func (c *transformChangeCommand) Apply() {
	c.item.Base().SetPosition(c.newPos)
	c.item.Base().SetTransform(c.newMatrix, false)
}

func (c *transformChangeCommand) Undo() {
	c.item.Base().SetPosition(c.oldPos)
	c.item.Base().SetTransform(c.oldMatrix, false)
}

func (c *transformChangeCommand) Label() string {
	return c.label + " " + c.item.Kind()
}

// geometrySnapshot captures an item's position and every point position.
// Resize gestures change both at once: repositioning a point and
// renormalizing the local frame.
type geometrySnapshot struct {
	pos    geometry.Point
	points []geometry.Point
}

func captureGeometry(item Item) geometrySnapshot {
	base := item.Base()
	snap := geometrySnapshot{pos: base.Position()}
	snap.points = make([]geometry.Point, len(base.Points()))
	for i, p := range base.Points() {
		snap.points[i] = p.Position()
	}
	return snap
}

func (s geometrySnapshot) restore(item Item) {
	base := item.Base()
	base.SetPosition(s.pos)
	for i, p := range base.Points() {
		if i < len(s.points) {
			p.SetPosition(s.points[i])
		}
	}
}

type geometryChangeCommand struct {
	item   Item
	before geometrySnapshot
	after  geometrySnapshot
}

func (c *geometryChangeCommand) Apply() { c.after.restore(c.item) }
func (c *geometryChangeCommand) Undo()  { c.before.restore(c.item) }
func (c *geometryChangeCommand) Label() string {
	return "resize " + c.item.Kind()
}

type pointInsertCommand struct {
	item  Item
	point *ItemPoint
	index int
}

func (c *pointInsertCommand) Apply() { c.item.Base().InsertPoint(c.index, c.point) }
func (c *pointInsertCommand) Undo()  { c.item.Base().RemovePoint(c.point) }
func (c *pointInsertCommand) Label() string {
	return "insert point"
}

type pointRemoveCommand struct {
	item  Item
	point *ItemPoint
	index int
	peers []*ItemPoint
}

func (c *pointRemoveCommand) Apply() {
	c.item.Base().RemovePoint(c.point)
}

func (c *pointRemoveCommand) Undo() {
	c.item.Base().InsertPoint(c.index, c.point)
	for _, q := range c.peers {
		c.point.Connect(q)
	}
}

func (c *pointRemoveCommand) Label() string {
	return "remove point"
}

type propertyChangeCommand struct {
	item     Item
	key      string
	oldValue any
	newValue any
}

func (c *propertyChangeCommand) Apply() {
	c.item.SetProperties(map[string]any{c.key: c.newValue})
}

func (c *propertyChangeCommand) Undo() {
	c.item.SetProperties(map[string]any{c.key: c.oldValue})
}

func (c *propertyChangeCommand) Label() string {
	return "change " + c.key
}

type visibilityCommand struct {
	item    Item
	visible bool
}

func (c *visibilityCommand) Apply() { c.item.Base().SetVisible(c.visible) }
func (c *visibilityCommand) Undo()  { c.item.Base().SetVisible(!c.visible) }
func (c *visibilityCommand) Label() string {
	if c.visible {
		return "show " + c.item.Kind()
	}
	return "hide " + c.item.Kind()
}

type connectCommand struct {
	a, b *ItemPoint
}

func (c *connectCommand) Apply() { c.a.Connect(c.b) }
func (c *connectCommand) Undo()  { c.a.Disconnect(c.b) }
func (c *connectCommand) Label() string {
	return "connect points"
}

type disconnectCommand struct {
	a, b *ItemPoint
}

func (c *disconnectCommand) Apply() { c.a.Disconnect(c.b) }
func (c *disconnectCommand) Undo()  { c.a.Connect(c.b) }
func (c *disconnectCommand) Label() string {
	return "disconnect points"
}

type addItemCommand struct {
	scene *Scene
	item  Item
	index int
}

func (c *addItemCommand) Apply() { c.scene.restoreItem(c.index, c.item) }
func (c *addItemCommand) Undo()  { c.scene.RemoveItem(c.item) }
func (c *addItemCommand) Label() string {
	return "add " + c.item.Kind()
}

// pointPair records one severed connection so removal can be undone
// exactly.
type pointPair struct {
	a, b *ItemPoint
}

type removeItemCommand struct {
	scene       *Scene
	item        Item
	index       int
	connections []pointPair
}

func (c *removeItemCommand) Apply() {
	for _, pair := range c.connections {
		pair.a.Disconnect(pair.b)
	}
	c.scene.RemoveItem(c.item)
}

func (c *removeItemCommand) Undo() {
	c.scene.restoreItem(c.index, c.item)
	for _, pair := range c.connections {
		pair.a.Connect(pair.b)
	}
}

func (c *removeItemCommand) Label() string {
	return "delete " + c.item.Kind()
}

// compositeCommand groups the commands of one user gesture, including any
// connection-settling side effects, so a single undo reverses all of it.
// Undo runs the children in reverse order.
type compositeCommand struct {
	label    string
	children []Command
}

func (c *compositeCommand) Apply() {
	for _, child := range c.children {
		child.Apply()
	}
}

func (c *compositeCommand) Undo() {
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].Undo()
	}
}

func (c *compositeCommand) Label() string {
	return c.label
}

package drawing

import (
	"math"
	"slices"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// ItemFlags describes which intents are legal for an item.
type ItemFlags uint16

const (
	CanMove ItemFlags = 1 << iota
	CanResize
	CanRotate
	CanFlip
	CanSelect
	CanHide
	CanDelete
	CanInsertPoints
	CanRemovePoints
)

// DefaultItemFlags is the flag set new items start with.
const DefaultItemFlags = CanMove | CanResize | CanRotate | CanFlip | CanSelect | CanHide | CanDelete

// Item kind tags. Used for dispatch when rebuilding items from documents
// and as the type tag in the persistence view.
const (
	KindLine     = "line"
	KindRect     = "rect"
	KindEllipse  = "ellipse"
	KindPolygon  = "polygon"
	KindPolyline = "polyline"
)

// Item is an editable shape: a position and transform relating local to
// scene coordinates, capability flags, an ordered list of item points, and
// a style table. All geometry except Position operates in local
// coordinates.
//
// Mutation intents (Move, Resize, Rotate, ...) are only called for items
// whose corresponding flag is set; the Editor enforces this. Calling an
// intent the flags forbid is a caller bug the item does not guard against.
type Item interface {
	// Base exposes the state shared by all shape kinds.
	Base() *ItemBase

	// Kind returns the item's type tag.
	Kind() string

	// Copy returns a deep copy of the item. Point connections are not
	// copied; Scene.CopyItems restores connections between copied items.
	Copy() Item

	// BoundingRect returns a local-coordinate box covering all painted
	// pixels, expanded by half the effective pen width. It is O(point
	// count) and never constructs a path. Invalid items return the empty
	// rect.
	BoundingRect() geometry.Rect

	// Shape returns the exact outline in local coordinates for precise
	// hit testing. Invalid items return an empty path.
	Shape() *geometry.Path

	// CenterPos returns the item's center in local coordinates.
	CenterPos() geometry.Point

	// IsValid reports whether the item describes a shape with positive
	// extent. Containers reject invalid items.
	IsValid() bool

	// Render paints the item in local coordinates using its
	// style-resolved pen and brush. Invalid items paint nothing.
	Render(s Surface)

	// Properties returns the item's style and shape-specific values as a
	// flat key to value view for persistence.
	Properties() map[string]any

	// SetProperties applies values previously returned by Properties.
	// Unknown keys are ignored.
	SetProperties(props map[string]any)

	// Move sets the item's position in scene coordinates. Shapes that
	// extend move behavior must invoke the base behavior first.
	Move(scenePos geometry.Point)

	// Resize maps scenePos into local coordinates, repositions point, and
	// re-derives the shape's dependent geometry.
	Resize(point *ItemPoint, scenePos geometry.Point) error

	// Rotate and RotateBack rotate the item a quarter turn about the
	// given scene position; they are exact inverses for axis-aligned
	// transforms.
	Rotate(scenePos geometry.Point) error
	RotateBack(scenePos geometry.Point) error

	// FlipHorizontal and FlipVertical mirror the item about the given
	// scene position.
	FlipHorizontal(scenePos geometry.Point) error
	FlipVertical(scenePos geometry.Point) error

	// ItemPointToInsert returns a new point to insert at the given local
	// position along with its insertion index, or nil for shapes without
	// the CanInsertPoints capability.
	ItemPointToInsert(localPos geometry.Point) (*ItemPoint, int)

	// ItemPointToRemove returns the existing point to remove nearest to
	// the given local position, or nil if removal is unsupported or would
	// drop the point count below the shape's structural minimum.
	ItemPointToRemove(localPos geometry.Point) *ItemPoint
}

// ItemBase carries the state and behavior shared by every shape kind.
// Concrete shapes embed it and override the geometry hooks.
type ItemBase struct {
	self Item // the embedding shape; set once at construction

	id        string
	scene     *Scene
	position  geometry.Point
	transform geometry.Transform2D
	flags     ItemFlags
	points    []*ItemPoint
	style     *StyleTable

	visible  bool
	selected bool
}

func newItemBase(id string, sheet *StyleSheet) ItemBase {
	return ItemBase{
		id:        id,
		transform: geometry.NewTransform2D(),
		flags:     DefaultItemFlags,
		style:     NewStyleTable(sheet),
		visible:   true,
	}
}

// bind wires the embedding shape into the base so added points learn
// their owner. Every shape constructor calls this exactly once.
func (b *ItemBase) bind(self Item) {
	b.self = self
}

// Base returns the shared item state.
func (b *ItemBase) Base() *ItemBase {
	return b
}

// ID returns the item's identifier.
func (b *ItemBase) ID() string {
	return b.id
}

// SetID replaces the generated identifier. Used when an item is rebuilt
// from a persisted document.
func (b *ItemBase) SetID(id string) {
	b.id = id
}

// Scene returns the owning scene, or nil while the item is detached.
func (b *ItemBase) Scene() *Scene {
	return b.scene
}

// Position returns the item's origin in scene coordinates.
func (b *ItemBase) Position() geometry.Point {
	return b.position
}

// SetPosition sets the item's origin in scene coordinates.
func (b *ItemBase) SetPosition(pos geometry.Point) {
	b.position = pos
}

// Transform returns the item's transform (rotation/scale/flip about the
// item origin).
func (b *ItemBase) Transform() geometry.Transform2D {
	return b.transform
}

// SetTransform updates the item's transform. If combine is true the
// matrix is composed with the current one, otherwise it replaces it.
func (b *ItemBase) SetTransform(m geometry.Matrix2D, combine bool) {
	b.transform.Compose(m, combine)
}

// Flags returns the item's capability flags.
func (b *ItemBase) Flags() ItemFlags {
	return b.flags
}

// SetFlags replaces the item's capability flags.
func (b *ItemBase) SetFlags(flags ItemFlags) {
	b.flags = flags
}

// Style returns the item's style table.
func (b *ItemBase) Style() *StyleTable {
	return b.style
}

// Points returns the item's points in order. Order is semantically
// meaningful: the index identifies the point's geometric role.
func (b *ItemBase) Points() []*ItemPoint {
	return b.points
}

// AddPoint appends a point to the item.
func (b *ItemBase) AddPoint(p *ItemPoint) {
	b.InsertPoint(len(b.points), p)
}

// InsertPoint inserts a point at the given index and takes ownership of
// it. Inserting nil or a point already owned by the item does nothing.
func (b *ItemBase) InsertPoint(index int, p *ItemPoint) {
	if p == nil || slices.Contains(b.points, p) {
		return
	}
	index = max(0, min(index, len(b.points)))
	b.points = slices.Insert(b.points, index, p)
	p.item = b.self
}

// RemovePoint removes a point from the item, severing all of its
// connections first so no peer is left referencing it. It returns the
// index the point held and the peers it was connected to, or -1 if the
// point did not belong to the item.
func (b *ItemBase) RemovePoint(p *ItemPoint) (int, []*ItemPoint) {
	index := slices.Index(b.points, p)
	if index < 0 {
		return -1, nil
	}
	peers := p.DisconnectAll()
	b.points = slices.Delete(b.points, index, index+1)
	p.item = nil
	return index, peers
}

// ClearPoints removes every point, severing all connections.
func (b *ItemBase) ClearPoints() {
	for len(b.points) > 0 {
		b.RemovePoint(b.points[len(b.points)-1])
	}
}

// PointAt returns the point at the given local position, or nil.
func (b *ItemBase) PointAt(localPos geometry.Point) *ItemPoint {
	for _, p := range b.points {
		if p.Position().Equal(localPos) {
			return p
		}
	}
	return nil
}

// PointNearest returns the point closest to the given local position, or
// nil if the item has no points.
func (b *ItemBase) PointNearest(localPos geometry.Point) *ItemPoint {
	var nearest *ItemPoint
	best := math.Inf(1)
	for _, p := range b.points {
		if d := p.Position().DistanceTo(localPos); d < best {
			best = d
			nearest = p
		}
	}
	return nearest
}

// IsVisible reports whether the item is drawn.
func (b *ItemBase) IsVisible() bool {
	return b.visible
}

// SetVisible sets whether the item is drawn.
func (b *ItemBase) SetVisible(visible bool) {
	b.visible = visible
}

// IsSelected reports whether the item is selected.
func (b *ItemBase) IsSelected() bool {
	return b.selected
}

// SetSelected sets whether the item is selected.
func (b *ItemBase) SetSelected(selected bool) {
	b.selected = selected
}

// --- Coordinate mapping ---
//
// Composition order: local -> item transform -> translate by item
// position -> scene. The inverse direction is the exact algebraic
// inverse via the transform's cached inverse matrix.

// MapToScene maps a local point to scene coordinates.
func (b *ItemBase) MapToScene(p geometry.Point) geometry.Point {
	return b.transform.Apply(p).Add(b.position)
}

// MapFromScene maps a scene point to local coordinates. It fails with
// geometry.ErrSingularTransform if the item's transform has no inverse.
func (b *ItemBase) MapFromScene(p geometry.Point) (geometry.Point, error) {
	return b.transform.ApplyInverse(p.Sub(b.position))
}

// SceneMatrix returns the combined local-to-scene matrix.
func (b *ItemBase) SceneMatrix() geometry.Matrix2D {
	return geometry.Translation(b.position.X, b.position.Y).Multiply(b.transform.Matrix())
}

// MapRectToScene maps a local rect to scene coordinates. The result is a
// quadrilateral, not a rect: the transform may include rotation.
func (b *ItemBase) MapRectToScene(r geometry.Rect) geometry.Polygon {
	return b.SceneMatrix().TransformRect(r)
}

// MapRectFromScene maps a scene rect into local coordinates as a
// quadrilateral.
func (b *ItemBase) MapRectFromScene(r geometry.Rect) (geometry.Polygon, error) {
	corners := geometry.Polygon{
		r.TopLeft(),
		{X: r.X + r.Width, Y: r.Y},
		r.BottomRight(),
		{X: r.X, Y: r.Y + r.Height},
	}
	out := make(geometry.Polygon, len(corners))
	for i, c := range corners {
		p, err := b.MapFromScene(c)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// MapPathToScene maps a local path to scene coordinates.
func (b *ItemBase) MapPathToScene(p *geometry.Path) *geometry.Path {
	return p.Transformed(b.SceneMatrix())
}

// MapPathFromScene maps a scene path into local coordinates.
func (b *ItemBase) MapPathFromScene(p *geometry.Path) (*geometry.Path, error) {
	if b.transform.IsSingular() {
		return nil, geometry.ErrSingularTransform
	}
	inverse, _ := b.SceneMatrix().Invert()
	return p.Transformed(inverse), nil
}

// --- Mutation intents ---

// Move sets the item's position. Derived shapes that extend move behavior
// must invoke this base behavior first.
func (b *ItemBase) Move(scenePos geometry.Point) {
	b.SetPosition(scenePos)
}

// resizePoint is the base resize behavior: map scenePos into local
// coordinates and reposition the point. Shape Resize implementations call
// this first, then re-derive dependent geometry.
func (b *ItemBase) resizePoint(point *ItemPoint, scenePos geometry.Point) error {
	local, err := b.MapFromScene(scenePos)
	if err != nil {
		return err
	}
	point.SetPosition(local)
	return nil
}

// Rotate rotates the item 90 degrees clockwise about the given scene
// position: the transform is composed with a quarter turn and the
// position is re-anchored so the scene point maps to itself. Rotate and
// RotateBack are exact inverses for axis-aligned transforms.
func (b *ItemBase) Rotate(scenePos geometry.Point) error {
	return b.composeAbout(scenePos, geometry.Rotation(math.Pi/2))
}

// RotateBack rotates the item 90 degrees counter-clockwise about the
// given scene position.
func (b *ItemBase) RotateBack(scenePos geometry.Point) error {
	return b.composeAbout(scenePos, geometry.Rotation(-math.Pi/2))
}

// FlipHorizontal mirrors the item about the vertical axis through the
// given scene position.
func (b *ItemBase) FlipHorizontal(scenePos geometry.Point) error {
	return b.composeAbout(scenePos, geometry.MirrorX())
}

// FlipVertical mirrors the item about the horizontal axis through the
// given scene position.
func (b *ItemBase) FlipVertical(scenePos geometry.Point) error {
	return b.composeAbout(scenePos, geometry.MirrorY())
}

func (b *ItemBase) composeAbout(scenePos geometry.Point, m geometry.Matrix2D) error {
	local, err := b.MapFromScene(scenePos)
	if err != nil {
		return err
	}
	b.transform.Compose(m, true)
	b.position = scenePos.Sub(b.transform.Apply(local))
	return nil
}

// renormalizeOrigin shifts the item's local frame so that the first point
// sits at (0,0). The same delta is subtracted from every point and the
// item's position is set to the anchor's scene position, preserving the
// item's scene-space appearance exactly.
func (b *ItemBase) renormalizeOrigin() {
	if len(b.points) == 0 {
		return
	}
	anchor := b.points[0].Position()
	if anchor.X == 0 && anchor.Y == 0 {
		return
	}
	scenePos := b.MapToScene(anchor)
	for _, p := range b.points {
		p.SetPosition(p.Position().Sub(anchor))
	}
	b.position = scenePos
}

// Default structural-edit hooks: shapes without the corresponding
// capability inherit these.

func (b *ItemBase) ItemPointToInsert(geometry.Point) (*ItemPoint, int) {
	return nil, -1
}

func (b *ItemBase) ItemPointToRemove(geometry.Point) *ItemPoint {
	return nil
}

// copyBaseInto duplicates position, transform, flags, visibility, style
// values, and points (positions and flags, not connections) into dst.
func (b *ItemBase) copyBaseInto(dst *ItemBase) {
	dst.position = b.position
	dst.transform = b.transform
	dst.flags = b.flags
	dst.visible = b.visible
	dst.ClearPoints()
	for _, p := range b.points {
		dst.AddPoint(NewItemPoint(p.Position(), p.Flags()))
	}
	for k, v := range b.style.values {
		dst.style.SetValue(k, v)
	}
}

// styleProperties returns the locally-set style values keyed by their
// string names.
func (b *ItemBase) styleProperties() map[string]any {
	props := make(map[string]any, len(b.style.values))
	for k, v := range b.style.values {
		props[string(k)] = v
	}
	return props
}

// applyStyleProperties writes any recognized style keys from props into
// the item's style table.
func (b *ItemBase) applyStyleProperties(props map[string]any) {
	for _, key := range []StyleKey{
		StylePenStyle, StylePenColor, StylePenOpacity, StylePenWidth,
		StylePenCapStyle, StylePenJoinStyle,
		StyleBrushStyle, StyleBrushColor, StyleBrushOpacity,
	} {
		if v, ok := props[string(key)]; ok {
			b.style.SetValue(key, v)
		}
	}
}

package document

import (
	"fmt"

	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// BuildScene reconstructs a live scene from a persisted diagram. Items
// are rebuilt in paint order; connections are re-established afterwards
// by item ID and point index. Reconstruction bypasses the scene's
// validity gate: a document may hold items that degenerated while in the
// scene, and a saved document must always load back.
func BuildScene(d *Diagram, sheet *drawing.StyleSheet) (*drawing.Scene, error) {
	scene := drawing.NewScene()

	for i, rec := range d.Items {
		item, err := BuildItem(rec, sheet)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := scene.RestoreItem(i, item); err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, rec.ID, err)
		}
	}

	for i, conn := range d.Connections {
		a, err := resolvePoint(scene, conn.FromItem, conn.FromPoint)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		b, err := resolvePoint(scene, conn.ToItem, conn.ToPoint)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
		a.Connect(b)
	}

	return scene, nil
}

// BuildItem reconstructs one live item from its persisted record.
func BuildItem(rec ItemRecord, sheet *drawing.StyleSheet) (drawing.Item, error) {
	item, err := drawing.NewItem(rec.Type, sheet)
	if err != nil {
		return nil, err
	}
	base := item.Base()
	base.SetID(rec.ID)
	base.SetPosition(rec.Position)
	base.SetTransform(geometry.MatrixFromSlice(rec.Transform), false)
	base.SetFlags(drawing.ItemFlags(rec.Flags))
	base.SetVisible(rec.Visible)

	// Constructors build the kind's default point set. Reconcile the
	// count first so each record index lands on the matching role, then
	// overwrite position and flags in place.
	for len(base.Points()) > len(rec.Points) {
		base.RemovePoint(base.Points()[len(base.Points())-1])
	}
	for len(base.Points()) < len(rec.Points) {
		base.AddPoint(drawing.NewItemPoint(geometry.Point{}, 0))
	}
	for i, pr := range rec.Points {
		p := base.Points()[i]
		p.SetPosition(geometry.Point{X: pr.X, Y: pr.Y})
		p.SetFlags(drawing.PointFlags(pr.Flags))
	}

	if rec.Properties != nil {
		item.SetProperties(rec.Properties)
	}
	return item, nil
}

func resolvePoint(scene *drawing.Scene, itemID string, pointIndex int) (*drawing.ItemPoint, error) {
	item := scene.FindItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("unknown item %q", itemID)
	}
	points := item.Base().Points()
	if pointIndex < 0 || pointIndex >= len(points) {
		return nil, fmt.Errorf("item %q has no point %d", itemID, pointIndex)
	}
	return points[pointIndex], nil
}

// Snapshot captures the scene into a persisted diagram, keeping the
// given diagram's canvas metadata. Each connection is recorded once,
// from the endpoint whose item comes earlier in paint order.
func Snapshot(scene *drawing.Scene, meta *Diagram) *Diagram {
	out := &Diagram{
		ID:          meta.ID,
		Name:        meta.Name,
		Width:       meta.Width,
		Height:      meta.Height,
		Background:  meta.Background,
		Items:       make([]ItemRecord, 0, scene.ItemCount()),
		Connections: []ConnectionRecord{},
	}

	itemOrder := make(map[drawing.Item]int, scene.ItemCount())
	for i, item := range scene.Items() {
		itemOrder[item] = i
		out.Items = append(out.Items, snapshotItem(item))
	}

	for i, item := range scene.Items() {
		for pi, p := range item.Base().Points() {
			for _, q := range p.Connections() {
				peer := q.Item()
				if peer == nil {
					continue
				}
				pj, ok := itemOrder[peer]
				if !ok || pj < i || (pj == i && indexOfPoint(peer, q) < pi) {
					continue
				}
				out.Connections = append(out.Connections, ConnectionRecord{
					FromItem:  item.Base().ID(),
					FromPoint: pi,
					ToItem:    peer.Base().ID(),
					ToPoint:   indexOfPoint(peer, q),
				})
			}
		}
	}

	return out
}

func snapshotItem(item drawing.Item) ItemRecord {
	base := item.Base()
	rec := ItemRecord{
		ID:         base.ID(),
		Type:       item.Kind(),
		Position:   base.Position(),
		Transform:  base.Transform().Matrix().ToSlice(),
		Flags:      uint16(base.Flags()),
		Visible:    base.IsVisible(),
		Points:     make([]PointRecord, 0, len(base.Points())),
		Properties: item.Properties(),
	}
	for _, p := range base.Points() {
		rec.Points = append(rec.Points, PointRecord{
			X:     p.Position().X,
			Y:     p.Position().Y,
			Flags: uint16(p.Flags()),
		})
	}
	return rec
}

func indexOfPoint(item drawing.Item, p *drawing.ItemPoint) int {
	for i, q := range item.Base().Points() {
		if q == p {
			return i
		}
	}
	return -1
}

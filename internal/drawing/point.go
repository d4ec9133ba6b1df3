package drawing

import (
	"slices"

	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// PointFlags describes what an item point can do within the scene.
type PointFlags uint16

const (
	// PointControl marks a point the user can grab to resize the item.
	PointControl PointFlags = 1 << iota
	// PointConnection marks a point that other items' points may connect to.
	PointConnection
	// PointFree marks a point that may be dragged independently of the
	// item's derived geometry (e.g. a polyline endpoint).
	PointFree
)

// ItemPoint is a named anchor belonging to exactly one item. Its position
// is in the owning item's local coordinates. Points may be connected to
// points on other items; the relation is symmetric and carries no
// ownership.
type ItemPoint struct {
	item        Item
	position    geometry.Point
	flags       PointFlags
	connections []*ItemPoint
}

// NewItemPoint creates a detached point at the given local position.
func NewItemPoint(pos geometry.Point, flags PointFlags) *ItemPoint {
	return &ItemPoint{position: pos, flags: flags}
}

// Item returns the owning item, or nil while the point is detached.
func (p *ItemPoint) Item() Item {
	return p.item
}

// Position returns the point's local position.
func (p *ItemPoint) Position() geometry.Point {
	return p.position
}

// SetPosition sets the point's local position.
func (p *ItemPoint) SetPosition(pos geometry.Point) {
	p.position = pos
}

// Flags returns the point's capability flags.
func (p *ItemPoint) Flags() PointFlags {
	return p.flags
}

// SetFlags replaces the point's capability flags.
func (p *ItemPoint) SetFlags(flags PointFlags) {
	p.flags = flags
}

// IsControl reports whether the point can be grabbed to resize its item.
func (p *ItemPoint) IsControl() bool {
	return p.flags&PointControl != 0
}

// IsConnection reports whether the point accepts connections.
func (p *ItemPoint) IsConnection() bool {
	return p.flags&PointConnection != 0
}

// Connections returns the points this point is connected to.
func (p *ItemPoint) Connections() []*ItemPoint {
	return p.connections
}

// IsConnectedTo reports whether p and other are connected.
func (p *ItemPoint) IsConnectedTo(other *ItemPoint) bool {
	return slices.Contains(p.connections, other)
}

// Connect establishes the symmetric connection between p and other. Both
// sides are updated before returning, so no caller ever observes the
// relation half-made. Connecting an already-connected pair, a nil point,
// or a point to itself is a no-op. Connect never moves either point;
// co-location is restored by the next geometry gesture on either item.
func (p *ItemPoint) Connect(other *ItemPoint) {
	if other == nil || other == p || p.IsConnectedTo(other) {
		return
	}
	p.connections = append(p.connections, other)
	other.connections = append(other.connections, p)
}

// Disconnect removes the symmetric connection between p and other.
// Disconnecting points that are not connected is a no-op.
func (p *ItemPoint) Disconnect(other *ItemPoint) {
	if other == nil || !p.IsConnectedTo(other) {
		return
	}
	p.connections = removePoint(p.connections, other)
	other.connections = removePoint(other.connections, p)
}

// DisconnectAll severs every connection of p and returns the peers it was
// connected to, in order. Used when a point is removed from its item so
// that no peer keeps a reference to it.
func (p *ItemPoint) DisconnectAll() []*ItemPoint {
	peers := slices.Clone(p.connections)
	for _, q := range peers {
		p.Disconnect(q)
	}
	return peers
}

func removePoint(pts []*ItemPoint, target *ItemPoint) []*ItemPoint {
	out := pts[:0]
	for _, pt := range pts {
		if pt != target {
			out = append(out, pt)
		}
	}
	return out
}

// Package session is the realtime collaboration layer: one room per
// project, each room owning the authoritative diagram editor. Clients
// submit edit operations over a websocket; the room applies them through
// the editor, acks the sender, and broadcasts to everyone else.
package session

import (
	"encoding/json"

	"github.com/inklet/inklet/backend-go/internal/document"
)

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Edit operation types carried inside op.submit.
const (
	OpItemCreate      = "item.create"
	OpItemDelete      = "item.delete"
	OpItemMove        = "item.move"
	OpItemResize      = "item.resize"
	OpItemRotate      = "item.rotate"
	OpItemRotateBack  = "item.rotate-back"
	OpItemFlipH       = "item.flip-h"
	OpItemFlipV       = "item.flip-v"
	OpItemPointInsert = "item.point-insert"
	OpItemPointRemove = "item.point-remove"
	OpItemConnect     = "item.connect"
	OpItemDisconnect  = "item.disconnect"
	OpItemProperty    = "item.property"
	OpItemVisibility  = "item.visibility"
	OpDiagramUpdate   = "diagram.update"
	OpEditUndo        = "edit.undo"
	OpEditRedo        = "edit.redo"
)

// Operation is one diagram mutation. Which fields are meaningful depends
// on Type; items are addressed by ID and points by index.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
	ClientSeq int64  `json:"clientSeq,omitempty"`

	ItemID string `json:"itemId,omitempty"`

	// item.create
	Item *document.ItemRecord `json:"item,omitempty"`

	// Scene position: move target, resize target, rotate/flip center,
	// point insertion/removal site.
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`

	// item.resize
	PointIndex *int `json:"pointIndex,omitempty"`

	// item.connect / item.disconnect: ItemID+PointIndex name one end,
	// these the other.
	PeerItemID     string `json:"peerItemId,omitempty"`
	PeerPointIndex *int   `json:"peerPointIndex,omitempty"`

	// item.property
	Key   string `json:"key,omitempty"`
	Value any    `json:"value,omitempty"`

	// item.visibility
	Visible *bool `json:"visible,omitempty"`

	// diagram.update
	Changes json.RawMessage `json:"changes,omitempty"`
}

type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
}

type DocSyncPayload struct {
	Document  *document.Diagram `json:"document"`
	ServerSeq int64             `json:"serverSeq"`
}

// DiagramChanges is the payload of diagram.update operations.
type DiagramChanges struct {
	Name       *string  `json:"name,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Background *string  `json:"background,omitempty"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

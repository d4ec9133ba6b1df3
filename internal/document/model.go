// Package document defines the persisted form of a diagram and converts
// between it and the live drawing scene. The persisted form is plain
// JSON-friendly records; item points are addressed by index because point
// order is semantically meaningful.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/inklet/inklet/backend-go/internal/geometry"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

// Diagram is the persisted form of one drawing.
type Diagram struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Background  string             `json:"background"`
	Items       []ItemRecord       `json:"items"`
	Connections []ConnectionRecord `json:"connections"`
}

// ItemRecord is the persisted form of one item.
type ItemRecord struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Position   geometry.Point `json:"position"`
	Transform  []float64      `json:"transform"`
	Flags      uint16         `json:"flags"`
	Visible    bool           `json:"visible"`
	Points     []PointRecord  `json:"points"`
	Properties map[string]any `json:"properties,omitempty"`
}

// PointRecord is the persisted form of one item point, in the owning
// item's local coordinates.
type PointRecord struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Flags uint16  `json:"flags"`
}

// ConnectionRecord names one symmetric point connection. Each connection
// appears exactly once, from the item earlier in paint order.
type ConnectionRecord struct {
	FromItem  string `json:"fromItem"`
	FromPoint int    `json:"fromPoint"`
	ToItem    string `json:"toItem"`
	ToPoint   int    `json:"toPoint"`
}

// DefaultWidth and DefaultHeight size newly created diagrams.
const (
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
)

// NewEmptyDiagram creates a blank diagram with default canvas settings.
func NewEmptyDiagram(name string) *Diagram {
	return &Diagram{
		ID:          typeid.NewDiagramID(),
		Name:        name,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Background:  "#ffffff",
		Items:       []ItemRecord{},
		Connections: []ConnectionRecord{},
	}
}

// Marshal encodes the diagram as JSON.
func (d *Diagram) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal diagram: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a diagram from JSON.
func Unmarshal(data []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal diagram: %w", err)
	}
	return &d, nil
}

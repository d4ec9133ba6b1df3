// Package render compiles a drawing scene into a flat list of draw
// commands a canvas-like frontend can replay without knowing anything
// about items, styles, or transforms.
package render

import (
	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// PathCommand is one segment of a compiled path.
// Coords holds 2 values for "move" and "line", 6 for "cubic" (two control
// points then the endpoint), and none for "close".
type PathCommand struct {
	Op     string    `json:"op"`
	Coords []float64 `json:"coords,omitempty"`
}

// DrawCommand describes one painted shape. Transform is the item's
// local-to-scene matrix as [a,b,c,d,e,f]; the frontend applies it before
// replaying Path.
type DrawCommand struct {
	Op            string        `json:"op"`
	ItemID        string        `json:"itemId,omitempty"`
	Transform     []float64     `json:"transform,omitempty"`
	Path          []PathCommand `json:"path,omitempty"`
	Fill          string        `json:"fill,omitempty"`
	FillOpacity   float64       `json:"fillOpacity,omitempty"`
	Stroke        string        `json:"stroke,omitempty"`
	StrokeWidth   float64       `json:"strokeWidth,omitempty"`
	StrokeOpacity float64       `json:"strokeOpacity,omitempty"`
	LineCap       string        `json:"lineCap,omitempty"`
	LineJoin      string        `json:"lineJoin,omitempty"`
}

// Compile renders every visible, valid item into draw commands in paint
// order: index 0 paints first, so later commands overdraw earlier ones.
func Compile(scene *drawing.Scene) []DrawCommand {
	s := &surface{}
	for _, item := range scene.Items() {
		if !item.Base().IsVisible() || !item.IsValid() {
			continue
		}
		s.itemID = item.Base().ID()
		s.transform = item.Base().SceneMatrix().ToSlice()
		item.Render(s)
	}
	if s.commands == nil {
		return []DrawCommand{}
	}
	return s.commands
}

// HitTest returns the ID of the front-most item whose shape contains the
// given scene position, or "".
func HitTest(scene *drawing.Scene, scenePos geometry.Point) string {
	hits := scene.ItemsAt(scenePos)
	if len(hits) == 0 {
		return ""
	}
	return hits[0].Base().ID()
}

// SelectionBounds returns the scene-space box covering the given items,
// accounting for each item's transform.
func SelectionBounds(items []drawing.Item) geometry.Rect {
	var bounds geometry.Rect
	for _, item := range items {
		if !item.IsValid() {
			continue
		}
		quad := item.Base().MapRectToScene(item.BoundingRect())
		bounds = bounds.Union(quad.BoundingRect())
	}
	return bounds
}

// surface accumulates draw commands for the item currently rendering.
type surface struct {
	commands  []DrawCommand
	itemID    string
	transform []float64
}

var _ drawing.Surface = (*surface)(nil)

func (s *surface) DrawLine(a, b geometry.Point, pen drawing.Pen) {
	p := &geometry.Path{}
	p.AddPolyline([]geometry.Point{a, b})
	s.emit(p, pen, drawing.Brush{Style: "none"})
}

func (s *surface) DrawRoundedRect(r geometry.Rect, rx, ry float64, pen drawing.Pen, brush drawing.Brush) {
	p := &geometry.Path{}
	p.AddRoundedRect(r, rx, ry)
	s.emit(p, pen, brush)
}

func (s *surface) DrawEllipse(r geometry.Rect, pen drawing.Pen, brush drawing.Brush) {
	p := &geometry.Path{}
	p.AddEllipse(r)
	s.emit(p, pen, brush)
}

func (s *surface) DrawPolygon(pg geometry.Polygon, pen drawing.Pen, brush drawing.Brush) {
	p := &geometry.Path{}
	p.AddPolygon(pg)
	s.emit(p, pen, brush)
}

func (s *surface) DrawPolyline(pts []geometry.Point, pen drawing.Pen) {
	p := &geometry.Path{}
	p.AddPolyline(pts)
	s.emit(p, pen, drawing.Brush{Style: "none"})
}

func (s *surface) emit(p *geometry.Path, pen drawing.Pen, brush drawing.Brush) {
	cmd := DrawCommand{
		Op:        "path",
		ItemID:    s.itemID,
		Transform: s.transform,
		Path:      compilePath(p),
	}
	if brush.Style != "none" && brush.Opacity > 0 {
		cmd.Fill = brush.Color
		cmd.FillOpacity = brush.Opacity
	}
	if pen.Style != "none" && pen.Opacity > 0 && pen.Width > 0 {
		cmd.Stroke = pen.Color
		cmd.StrokeWidth = pen.Width
		cmd.StrokeOpacity = pen.Opacity
		cmd.LineCap = pen.Cap
		cmd.LineJoin = pen.Join
	}
	s.commands = append(s.commands, cmd)
}

func compilePath(p *geometry.Path) []PathCommand {
	elements := p.Elements()
	out := make([]PathCommand, 0, len(elements))
	for _, el := range elements {
		switch el.Op {
		case geometry.MoveTo:
			out = append(out, PathCommand{Op: "move", Coords: coords(el.Points)})
		case geometry.LineTo:
			out = append(out, PathCommand{Op: "line", Coords: coords(el.Points)})
		case geometry.CubicTo:
			out = append(out, PathCommand{Op: "cubic", Coords: coords(el.Points)})
		case geometry.ClosePath:
			out = append(out, PathCommand{Op: "close"})
		}
	}
	return out
}

func coords(pts []geometry.Point) []float64 {
	out := make([]float64, 0, len(pts)*2)
	for _, pt := range pts {
		out = append(out, pt.X, pt.Y)
	}
	return out
}

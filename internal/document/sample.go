package document

import (
	"github.com/inklet/inklet/backend-go/internal/drawing"
	"github.com/inklet/inklet/backend-go/internal/geometry"
)

// SampleDiagram builds a small demo drawing: two boxes joined by a line,
// with both line endpoints connected. Used to seed playground sessions.
func SampleDiagram() *Diagram {
	sheet := drawing.NewStyleSheet()
	scene := drawing.NewScene()

	left := drawing.NewRectItem(sheet)
	left.SetRect(geometry.Rect{Width: 200, Height: 120})
	left.SetCornerRadii(12, 12)
	left.Move(geometry.Point{X: 200, Y: 300})

	right := drawing.NewEllipseItem(sheet)
	right.SetEllipse(geometry.Rect{Width: 180, Height: 180})
	right.Move(geometry.Point{X: 700, Y: 270})

	link := drawing.NewLineItem(sheet)
	link.SetLine(geometry.Point{}, geometry.Point{X: 300, Y: 0})
	link.Move(geometry.Point{X: 400, Y: 360})
	link.Style().SetValue(drawing.StylePenWidth, 4.0)

	for _, item := range []drawing.Item{left, right, link} {
		if err := scene.AddItem(item); err != nil {
			// The sample is hand-built from valid shapes.
			panic(err)
		}
	}

	// Left rect mid-right (200,300)+(200,60) meets the line start at
	// (400,360); the ellipse mid-left (700,270)+(0,90) meets the line end.
	left.Points()[3].Connect(link.Points()[0])
	right.Points()[7].Connect(link.Points()[1])

	d := NewEmptyDiagram("Playground")
	return Snapshot(scene, d)
}

package drawing

import "github.com/inklet/inklet/backend-go/internal/geometry"

// Surface is the painting target items render onto. Implementations
// receive geometry in the item's local coordinates; applying the item's
// scene transform is the surface's responsibility. Pen and brush settings
// are passed per call so a surface never carries ambient drawing state
// between items.
type Surface interface {
	DrawLine(a, b geometry.Point, pen Pen)
	DrawRoundedRect(r geometry.Rect, rx, ry float64, pen Pen, brush Brush)
	DrawEllipse(r geometry.Rect, pen Pen, brush Brush)
	DrawPolygon(pg geometry.Polygon, pen Pen, brush Brush)
	DrawPolyline(pts []geometry.Point, pen Pen)
}

package geometry

import (
	"math"
	"testing"
)

func TestRectNormalized(t *testing.T) {
	r := RectFromPoints(Point{X: 10, Y: 10}, Point{X: 2, Y: 4}).Normalized()
	want := Rect{X: 2, Y: 4, Width: 8, Height: 6}
	if r != want {
		t.Errorf("Normalized = %+v, want %+v", r, want)
	}
}

func TestRectAdjusted(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}.Adjusted(-2, -2, 2, 2)
	want := Rect{X: -2, Y: -2, Width: 14, Height: 14}
	if r != want {
		t.Errorf("Adjusted = %+v, want %+v", r, want)
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			"overlapping",
			Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10},
			Rect{0, 0, 15, 15},
		},
		{
			"disjoint",
			Rect{0, 0, 1, 1}, Rect{9, 9, 1, 1},
			Rect{0, 0, 10, 10},
		},
		{
			"empty left",
			Rect{}, Rect{3, 3, 2, 2},
			Rect{3, 3, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPolygonContains(t *testing.T) {
	triangle := Polygon{{0, 0}, {10, 0}, {5, 10}}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"centroid", Point{5, 3}, true},
		{"outside left", Point{-1, 1}, false},
		{"outside above", Point{5, 11}, false},
		{"near apex inside", Point{5, 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := triangle.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Point{5, 3}, 3},
		{"beyond end", Point{13, 4}, 5},
		{"before start", Point{-3, -4}, 5},
		{"on segment", Point{7, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, a, b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceToSegmentDegenerate(t *testing.T) {
	got := DistanceToSegment(Point{3, 4}, Point{0, 0}, Point{0, 0})
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("distance to zero-length segment = %v, want 5", got)
	}
}

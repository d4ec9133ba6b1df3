package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestTransformApplyInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix2D
	}{
		{"identity", Identity()},
		{"quarter turn", Rotation(math.Pi / 2)},
		{"mirror", MirrorX()},
		{"scaled rotation", Rotation(0.3).Multiply(Scaling(2, 5))},
	}

	points := []Point{{0, 0}, {1, 0}, {-3, 7}, {0.5, -0.25}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := TransformFromMatrix(tt.m)
			for _, p := range points {
				back, err := tr.ApplyInverse(tr.Apply(p))
				if err != nil {
					t.Fatalf("ApplyInverse: %v", err)
				}
				if !back.Equal(p) {
					t.Errorf("round trip of %v = %v", p, back)
				}
			}
		})
	}
}

func TestTransformSingular(t *testing.T) {
	tr := TransformFromMatrix(Scaling(0, 1))
	if !tr.IsSingular() {
		t.Fatal("zero-determinant transform not reported singular")
	}
	if _, err := tr.ApplyInverse(Point{X: 1, Y: 1}); !errors.Is(err, ErrSingularTransform) {
		t.Errorf("ApplyInverse error = %v, want ErrSingularTransform", err)
	}
}

func TestTransformInverseTracksMutation(t *testing.T) {
	tr := NewTransform2D()
	tr.Compose(Scaling(0, 0), true)
	if !tr.IsSingular() {
		t.Fatal("transform not singular after composing a degenerate scale")
	}

	// Replacing the matrix must clear the singular state.
	tr.Compose(Translation(4, 4), false)
	if tr.IsSingular() {
		t.Fatal("transform still singular after replacement")
	}
	got, err := tr.ApplyInverse(Point{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("ApplyInverse: %v", err)
	}
	if want := (Point{X: 1, Y: 1}); !got.Equal(want) {
		t.Errorf("ApplyInverse = %v, want %v", got, want)
	}
}

func TestComposeCombineOrder(t *testing.T) {
	// combine=true stacks the new matrix on top: result = other * current.
	tr := TransformFromMatrix(Scaling(2, 2))
	tr.Compose(Translation(1, 0), true)
	got := tr.Apply(Point{X: 1, Y: 0})
	want := Point{X: 3, Y: 0} // scale to (2,0), then translate
	if !got.Equal(want) {
		t.Errorf("composed apply = %v, want %v", got, want)
	}
}

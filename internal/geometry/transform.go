package geometry

import "errors"

// ErrSingularTransform is returned when an inverse mapping is requested on
// a non-invertible transform. Callers must abort the operation; silently
// substituting identity would corrupt coordinate bookkeeping.
var ErrSingularTransform = errors.New("geometry: transform is not invertible")

// Transform2D is an affine transform paired with its cached inverse. The
// inverse is recomputed on every mutation so it can never go stale.
type Transform2D struct {
	matrix   Matrix2D
	inverse  Matrix2D
	singular bool
}

// NewTransform2D returns an identity transform.
func NewTransform2D() Transform2D {
	return Transform2D{matrix: Identity(), inverse: Identity()}
}

// TransformFromMatrix builds a transform from an existing matrix.
func TransformFromMatrix(m Matrix2D) Transform2D {
	var t Transform2D
	t.set(m)
	return t
}

func (t *Transform2D) set(m Matrix2D) {
	t.matrix = m
	inv, ok := m.Invert()
	t.inverse = inv
	t.singular = !ok
}

// Compose updates the transform. If combine is true, other is applied on
// top of the existing matrix (the existing transform runs first);
// otherwise other replaces the matrix entirely.
func (t *Transform2D) Compose(other Matrix2D, combine bool) {
	if combine {
		t.set(other.Multiply(t.matrix))
	} else {
		t.set(other)
	}
}

// Matrix returns the forward matrix.
func (t Transform2D) Matrix() Matrix2D {
	return t.matrix
}

// Apply maps a point through the forward matrix.
func (t Transform2D) Apply(p Point) Point {
	return t.matrix.TransformPoint(p)
}

// ApplyInverse maps a point through the inverse matrix. It fails with
// ErrSingularTransform if the forward matrix is not invertible.
func (t Transform2D) ApplyInverse(p Point) (Point, error) {
	if t.singular {
		return Point{}, ErrSingularTransform
	}
	return t.inverse.TransformPoint(p), nil
}

// IsSingular reports whether the transform has no inverse.
func (t Transform2D) IsSingular() bool {
	return t.singular
}

// IsIdentity reports whether the transform is the identity.
func (t Transform2D) IsIdentity() bool {
	return t.matrix.IsIdentity()
}

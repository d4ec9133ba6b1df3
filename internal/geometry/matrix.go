package geometry

import "math"

// Matrix2D represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// Where:
// - a, d = scale
// - b, c = skew/rotation
// - e, f = translation
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translation returns a translation matrix.
func Translation(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scaling returns a scale matrix.
func Scaling(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a rotation matrix (angle in radians).
//
// Angles that are an exact multiple of 90 degrees produce exact 0/±1
// entries, so composing a quarter turn with its inverse restores the
// original matrix bit-for-bit.
func Rotation(radians float64) Matrix2D {
	if quarters, exact := exactQuarterTurns(radians); exact {
		switch quarters {
		case 0:
			return Identity()
		case 1:
			return Matrix2D{0, 1, -1, 0, 0, 0}
		case 2:
			return Matrix2D{-1, 0, 0, -1, 0, 0}
		case 3:
			return Matrix2D{0, -1, 1, 0, 0, 0}
		}
	}
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// RotationDegrees returns a rotation matrix (angle in degrees).
func RotationDegrees(degrees float64) Matrix2D {
	return Rotation(degrees * math.Pi / 180.0)
}

// MirrorX returns a horizontal mirror matrix (x -> -x).
func MirrorX() Matrix2D {
	return Matrix2D{-1, 0, 0, 1, 0, 0}
}

// MirrorY returns a vertical mirror matrix (y -> -y).
func MirrorY() Matrix2D {
	return Matrix2D{1, 0, 0, -1, 0, 0}
}

// exactQuarterTurns reports whether radians is an exact multiple of pi/2
// and, if so, how many quarter turns it represents (0..3).
func exactQuarterTurns(radians float64) (int, bool) {
	turns := radians / (math.Pi / 2)
	rounded := math.Round(turns)
	if math.Abs(turns-rounded) > 1e-12 {
		return 0, false
	}
	quarters := int(rounded) % 4
	if quarters < 0 {
		quarters += 4
	}
	return quarters, true
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix2D) TransformPoint(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformRect transforms a rectangle and returns the resulting
// quadrilateral. A matrix with rotation or skew maps a rectangle onto a
// non-axis-aligned shape, so the result is a polygon, not a rect.
func (m Matrix2D) TransformRect(r Rect) Polygon {
	return Polygon{
		m.TransformPoint(Point{r.X, r.Y}),
		m.TransformPoint(Point{r.X + r.Width, r.Y}),
		m.TransformPoint(Point{r.X + r.Width, r.Y + r.Height}),
		m.TransformPoint(Point{r.X, r.Y + r.Height}),
	}
}

// Determinant returns the determinant of the matrix.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix. The second return value is
// false if the matrix is singular, in which case the first value is the
// identity matrix and must not be used as an inverse.
func (m Matrix2D) Invert() (Matrix2D, bool) {
	det := m.Determinant()
	if det == 0 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}, true
}

// ToSlice returns the matrix as a float64 slice for JSON serialization.
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// MatrixFromSlice rebuilds a matrix from a slice produced by ToSlice.
// Slices that are too short yield the identity.
func MatrixFromSlice(s []float64) Matrix2D {
	if len(s) < 6 {
		return Identity()
	}
	return Matrix2D{s[0], s[1], s[2], s[3], s[4], s[5]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}

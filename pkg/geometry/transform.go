package geometry

import "math"

// Transform is a 2x3 affine transformation matrix restricted, in
// practice, to rotation plus translation:
//
//	[a b tx]
//	[c d ty]
//
// Placement resolution only ever composes rotations and translations,
// so a Transform always preserves lengths and angles. The zero value is
// the degenerate all-zero matrix; use [Identity] instead.
type Transform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translation returns a transform that moves points by (dx, dy).
func Translation(dx, dy float64) Transform {
	return Transform{A: 1, D: 1, TX: dx, TY: dy}
}

// Rotation returns a transform that rotates points counter-clockwise
// about the origin by the given angle in degrees.
func Rotation(angleDeg float64) Transform {
	sin, cos := math.Sincos(Radians(angleDeg))
	return Transform{A: cos, B: -sin, C: sin, D: cos}
}

// Place returns the transform that maps a component's local frame into
// the world frame for a placement at the given position and rotation:
// points are rotated counter-clockwise by angleDeg, then translated to
// position.
func Place(position Point, angleDeg float64) Transform {
	return Translation(position.X, position.Y).Compose(Rotation(angleDeg))
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns the transform equivalent to applying other first and
// then t, i.e. the matrix product t x other.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Angle extracts the transform's rotation angle in degrees, normalized
// to [0, 360). Valid for rotation+translation transforms.
func (t Transform) Angle() float64 {
	return NormalizeAngle(Degrees(math.Atan2(t.C, t.A)))
}

// Offset extracts the transform's translation component.
func (t Transform) Offset() Point {
	return Point{X: t.TX, Y: t.TY}
}

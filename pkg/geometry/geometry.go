package geometry

import "math"

// Point represents a 2D point with floating-point coordinates.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Pt creates a new Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rotate returns the point rotated counter-clockwise about the origin
// by the given angle in degrees.
func (p Point) Rotate(angleDeg float64) Point {
	rad := Radians(angleDeg)
	sin, cos := math.Sincos(rad)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Radians converts an angle from degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts an angle from radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle maps an angle in degrees into the canonical [0, 360)
// range. Exact multiples of 360 normalize to 0.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// math.Mod can return 360-epsilon values that round back up; a==360
	// is impossible, but -0 is not.
	if a == 0 {
		return 0
	}
	return a
}

// AngleDelta returns the smallest signed difference b-a between two
// angles in degrees, in the range (-180, 180]. Use it for tolerance
// comparisons where 359.9° and 0.1° must count as 0.2° apart.
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// Rect is an axis-aligned bounding rectangle described by its minimum
// and maximum corners.
type Rect struct {
	Min Point `json:"min" bson:"min"`
	Max Point `json:"max" bson:"max"`
}

// EmptyRect returns a rectangle that acts as the identity for [Rect.Union]:
// its minimum corner is +Inf and its maximum corner is -Inf.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// W returns the rectangle's width, or 0 if it is empty.
func (r Rect) W() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// H returns the rectangle's height, or 0 if it is empty.
func (r Rect) H() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Pad returns the rectangle grown by margin on every side.
func (r Rect) Pad(margin float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: r.Min.X - margin, Y: r.Min.Y - margin},
		Max: Point{X: r.Max.X + margin, Y: r.Max.Y + margin},
	}
}

// ExpandToInclude returns the rectangle grown to contain the point.
func (r Rect) ExpandToInclude(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

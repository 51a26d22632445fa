package geometry

import "slices"

// Polygon is a closed polygon described by its vertices in order. The
// closing edge from the last vertex back to the first is implicit - the
// first point is not repeated.
type Polygon []Point

// Clone returns a copy of the polygon.
func (p Polygon) Clone() Polygon {
	return slices.Clone(p)
}

// Transform returns a new polygon with every vertex transformed by t.
// The receiver is not modified.
func (p Polygon) Transform(t Transform) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = t.Apply(pt)
	}
	return out
}

// Translate returns a new polygon moved by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	return p.Transform(Translation(dx, dy))
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
// An empty polygon yields [EmptyRect].
func (p Polygon) Bounds() Rect {
	r := EmptyRect()
	for _, pt := range p {
		r = r.ExpandToInclude(pt)
	}
	return r
}

// Centroid returns the arithmetic mean of the polygon's vertices.
// Returns the origin for an empty polygon.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sum Point
	for _, pt := range p {
		sum = sum.Add(pt)
	}
	return sum.Scale(1 / float64(len(p)))
}

// Area returns the polygon's signed area via the shoelace formula.
// Counter-clockwise polygons have positive area.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

// OnBoundary reports whether pt lies on one of the polygon's edges,
// within tol of the nearest edge.
func (p Polygon) OnBoundary(pt Point, tol float64) bool {
	n := len(p)
	if n < 2 {
		return false
	}
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		if distToSegment(pt, a, b) <= tol {
			return true
		}
	}
	return false
}

func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Scale(t)))
}

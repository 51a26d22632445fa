package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sampling floors. Curved shapes are sampled into polygons; short arcs
// and small spirals still get enough vertices to stay visually smooth.
const (
	minArcPoints    = 10
	minSpiralPoints = 100
)

// Rectangle builds an axis-aligned rectangle spanning x in [0, length]
// and y in [-width/2, width/2]. This is the canonical frame for
// straight line sections: the input port sits at the origin and the
// output port at (length, 0).
func Rectangle(length, width float64) (Polygon, error) {
	if length <= 0 {
		return nil, errPositive("rectangle", "length", length)
	}
	if width <= 0 {
		return nil, errPositive("rectangle", "width", width)
	}
	return Polygon{
		{0, -width / 2},
		{length, -width / 2},
		{length, width / 2},
		{0, width / 2},
	}, nil
}

// Box builds a rectangle from two opposite corners, without parameter
// validation. Use it for derived rectangles (ground planes, plates,
// vias) whose defining parameters were already checked.
func Box(x0, y0, x1, y1 float64) Polygon {
	return Polygon{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
	}
}

// Taper builds a linear taper between two widths: a trapezoid spanning
// x in [0, length] with widthIn at x=0 and widthOut at x=length, both
// centered on the x axis.
func Taper(length, widthIn, widthOut float64) (Polygon, error) {
	if length <= 0 {
		return nil, errPositive("taper", "length", length)
	}
	if widthIn <= 0 {
		return nil, errPositive("taper", "width_in", widthIn)
	}
	if widthOut <= 0 {
		return nil, errPositive("taper", "width_out", widthOut)
	}
	return Polygon{
		{0, -widthIn / 2},
		{length, -widthOut / 2},
		{length, widthOut / 2},
		{0, widthIn / 2},
	}, nil
}

// ArcBand builds an annular band centered on the origin between
// innerRadius and outerRadius, sweeping counter-clockwise from startDeg
// to stopDeg. The vertex count scales with the swept angle (one sample
// per 5 degrees, minimum 10) so long bends stay smooth without
// over-sampling short ones.
func ArcBand(innerRadius, outerRadius, startDeg, stopDeg float64) (Polygon, error) {
	span := stopDeg - startDeg
	n := max(minArcPoints, int(math.Abs(span)/5))
	return ArcBandN(innerRadius, outerRadius, startDeg, stopDeg, n)
}

// ArcBandN is [ArcBand] with an explicit sample count per rail. Some
// composite shapes fix their sampling independent of the swept angle.
func ArcBandN(innerRadius, outerRadius, startDeg, stopDeg float64, n int) (Polygon, error) {
	if innerRadius < 0 {
		return nil, errNonNegative("arc", "inner_radius", innerRadius)
	}
	if outerRadius <= innerRadius {
		return nil, NewParameterError("arc", "outer_radius", outerRadius, "must exceed the inner radius")
	}
	if stopDeg == startDeg {
		return nil, NewParameterError("arc", "angle", 0, "must span a non-zero angle")
	}
	if n < 2 {
		n = 2
	}

	theta := floats.Span(make([]float64, n), Radians(startDeg), Radians(stopDeg))
	poly := make(Polygon, 0, 2*n)
	for _, t := range theta {
		sin, cos := math.Sincos(t)
		poly = append(poly, Point{X: innerRadius * cos, Y: innerRadius * sin})
	}
	for i := n - 1; i >= 0; i-- {
		sin, cos := math.Sincos(theta[i])
		poly = append(poly, Point{X: outerRadius * cos, Y: outerRadius * sin})
	}
	return poly, nil
}

// Ring builds a full annulus between innerRadius and outerRadius,
// sampled with 100 points per rail.
func Ring(innerRadius, outerRadius float64) (Polygon, error) {
	return ArcBandN(innerRadius, outerRadius, 0, 360, 100)
}

// SpiralPath samples the centerline of an Archimedean spiral starting
// at (innerRadius, 0) and winding counter-clockwise for turns
// revolutions (fractional turns allowed). The radius grows linearly
// with angle: r = innerRadius + spacing * theta / 2pi, so consecutive
// turns are spacing apart center to center. The sample count scales
// with the turn count (20 per turn, minimum 100).
func SpiralPath(turns, spacing, innerRadius float64) ([]Point, error) {
	if turns <= 0 {
		return nil, errPositive("spiral", "n_turns", turns)
	}
	if spacing <= 0 {
		return nil, errPositive("spiral", "spacing", spacing)
	}
	if innerRadius <= 0 {
		return nil, errPositive("spiral", "inner_radius", innerRadius)
	}

	n := max(minSpiralPoints, int(turns*20))
	theta := floats.Span(make([]float64, n), 0, 2*math.Pi*turns)
	pts := make([]Point, n)
	for i, t := range theta {
		r := innerRadius + spacing*t/(2*math.Pi)
		sin, cos := math.Sincos(t)
		pts[i] = Point{X: r * cos, Y: r * sin}
	}
	return pts, nil
}

// PathOutline expands a centerline into a closed polygon of the given
// width, using mitered joints. Miter lengths are capped at twice the
// half-width so near-reversals cannot produce unbounded spikes; sampled
// curves never get close to that limit.
func PathOutline(points []Point, width float64) (Polygon, error) {
	if width <= 0 {
		return nil, errPositive("path", "width", width)
	}
	if len(points) < 2 {
		return nil, NewParameterError("path", "points", float64(len(points)), "must contain at least two points")
	}

	n := len(points)
	half := width / 2
	left := make([]Point, n)
	right := make([]Point, n)

	for i := range n {
		var dirIn, dirOut Point
		if i > 0 {
			dirIn = unit(points[i].Sub(points[i-1]))
		}
		if i < n-1 {
			dirOut = unit(points[i+1].Sub(points[i]))
		}
		// Endpoints use the single adjacent segment direction.
		if i == 0 {
			dirIn = dirOut
		}
		if i == n-1 {
			dirOut = dirIn
		}

		bisector := unit(dirIn.Add(dirOut))
		if bisector == (Point{}) {
			// Degenerate reversal: fall back to the incoming normal.
			bisector = dirIn
		}
		normal := Point{X: -bisector.Y, Y: bisector.X}

		// Miter scale 1/cos(phi/2), capped at 2.
		miter := 1.0
		if dot := dirIn.X*bisector.X + dirIn.Y*bisector.Y; dot > 0.5 {
			miter = 1 / dot
		} else {
			miter = 2
		}

		offset := normal.Scale(half * miter)
		left[i] = points[i].Add(offset)
		right[i] = points[i].Sub(offset)
	}

	poly := make(Polygon, 0, 2*n)
	poly = append(poly, left...)
	for i := n - 1; i >= 0; i-- {
		poly = append(poly, right[i])
	}
	return poly, nil
}

// Segment builds a straight trace of the given width between two
// points, as a four-corner polygon.
func Segment(a, b Point, width float64) (Polygon, error) {
	if width <= 0 {
		return nil, errPositive("segment", "width", width)
	}
	if a == b {
		return nil, NewParameterError("segment", "length", 0, "must be positive")
	}
	dir := unit(b.Sub(a))
	normal := Point{X: -dir.Y, Y: dir.X}
	offset := normal.Scale(width / 2)
	return Polygon{
		a.Add(offset),
		b.Add(offset),
		b.Sub(offset),
		a.Sub(offset),
	}, nil
}

func unit(p Point) Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

package iconbadge

import "math"

// lengthAccuracy is the tolerance used by the adaptive arc length estimation, in source units.
const lengthAccuracy = 0.01

// maxLengthDepth bounds the recursion of the arc length subdivision.
const maxLengthDepth = 16

// Point is a 2D point, either in outline (source) space or in pixel space.
type Point struct {
	X, Y float64
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales the point by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp linearly interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Segment is a single drawing primitive of a decoded path.
// It can be evaluated at any parametric position t in [0, 1]
// and reports an approximation of its arc length.
type Segment interface {
	Eval(t float64) Point
	Start() Point
	End() Point
	Length() float64
}

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

func (l Line) Eval(t float64) Point { return l.P0.Lerp(l.P1, t) }
func (l Line) Start() Point         { return l.P0 }
func (l Line) End() Point           { return l.P1 }
func (l Line) Length() float64      { return l.P0.Distance(l.P1) }

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at t using the Bernstein form.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

// Subdivide splits the curve in two halves at t=0.5 (de Casteljau).
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{P0: q.P0, P1: q.P0.Lerp(q.P1, 0.5), P2: mid},
		QuadBez{P0: mid, P1: q.P1.Lerp(q.P2, 0.5), P2: q.P2}
}

// Length approximates the arc length by adaptive subdivision: a piece is
// accepted once its chord and control polygon lengths agree within tolerance.
func (q QuadBez) Length() float64 {
	return quadLength(q, lengthAccuracy*lengthAccuracy, 0)
}

func quadLength(q QuadBez, accuracySq float64, depth int) float64 {
	chord := q.P0.Distance(q.P2)
	poly := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)

	diff := poly - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + poly) / 2
	}
	q1, q2 := q.Subdivide()
	return quadLength(q1, accuracySq, depth+1) + quadLength(q2, accuracySq, depth+1)
}

// CubicBez is a cubic Bézier curve.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t using the Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	mt2, t2 := mt*mt, t*t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

// Subdivide splits the curve in two halves at t=0.5 (de Casteljau).
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Length approximates the arc length by adaptive subdivision.
func (c CubicBez) Length() float64 {
	return cubicLength(c, lengthAccuracy*lengthAccuracy, 0)
}

func cubicLength(c CubicBez, accuracySq float64, depth int) float64 {
	chord := c.P0.Distance(c.P3)
	poly := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)

	diff := poly - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + poly) / 2
	}
	c1, c2 := c.Subdivide()
	return cubicLength(c1, accuracySq, depth+1) + cubicLength(c2, accuracySq, depth+1)
}

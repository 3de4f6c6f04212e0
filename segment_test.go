package iconbadge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_LineLength(t *testing.T) {
	l := Line{P0: Point{0, 0}, P1: Point{3, 4}}

	assert.Equal(t, 5.0, l.Length())
	assert.Equal(t, Point{1.5, 2}, l.Eval(0.5))
	assert.Equal(t, l.P0, l.Start())
	assert.Equal(t, l.P1, l.End())
}

func TestSegment_QuadLength(t *testing.T) {
	// A quadratic curve with a collinear control point is a straight line.
	q := QuadBez{P0: Point{0, 0}, P1: Point{50, 0}, P2: Point{100, 0}}
	assert.InDelta(t, 100.0, q.Length(), 1e-9)

	q = QuadBez{P0: Point{0, 0}, P1: Point{50, 50}, P2: Point{100, 0}}
	chord := q.P0.Distance(q.P2)
	poly := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
	assert.Greater(t, q.Length(), chord)
	assert.Less(t, q.Length(), poly)

	assert.Equal(t, q.P0, q.Eval(0))
	assert.Equal(t, q.P2, q.Eval(1))
	assert.Equal(t, Point{50, 25}, q.Eval(0.5))
}

func TestSegment_CubicLength(t *testing.T) {
	// Quarter circle approximation of radius 100.
	const k = 0.5522847498
	c := CubicBez{
		P0: Point{100, 0},
		P1: Point{100, 100 * k},
		P2: Point{100 * k, 100},
		P3: Point{0, 100},
	}
	assert.InDelta(t, math.Pi/2*100, c.Length(), 0.1)

	assert.Equal(t, c.P0, c.Eval(0))
	assert.Equal(t, c.P3, c.Eval(1))
}

func TestSegment_Subdivide(t *testing.T) {
	c := CubicBez{P0: Point{0, 0}, P1: Point{0, 10}, P2: Point{10, 10}, P3: Point{10, 0}}
	c1, c2 := c.Subdivide()

	assert.Equal(t, c.P0, c1.P0)
	assert.Equal(t, c1.P3, c2.P0)
	assert.Equal(t, c.P3, c2.P3)
	assert.InDelta(t, c.Eval(0.5).X, c1.P3.X, 1e-9)
	assert.InDelta(t, c.Eval(0.5).Y, c1.P3.Y, 1e-9)
	assert.InDelta(t, c.Length(), c1.Length()+c2.Length(), 0.05)

	q := QuadBez{P0: Point{0, 0}, P1: Point{5, 10}, P2: Point{10, 0}}
	q1, q2 := q.Subdivide()
	assert.Equal(t, q1.P2, q2.P0)
	assert.Equal(t, q.Eval(0.5), q1.P2)
}

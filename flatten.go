package iconbadge

import (
	"fmt"
	"math"

	"github.com/esimov/iconbadge/utils"
)

// SubpathMode selects how the flattener splits a path into polygons.
type SubpathMode int

const (
	// SubpathExplicit starts a new polygon on every move command.
	SubpathExplicit SubpathMode = iota
	// SubpathHeuristic starts a new polygon whenever the mapped start point of a segment
	// lies farther than the tolerance from the last point of the polygon being built.
	SubpathHeuristic
)

// String returns the flag name of the mode.
func (m SubpathMode) String() string {
	if m == SubpathHeuristic {
		return "heuristic"
	}
	return "explicit"
}

// ParseSubpathMode returns the mode named s. An empty name selects SubpathExplicit.
func ParseSubpathMode(s string) (SubpathMode, error) {
	switch s {
	case "", "explicit":
		return SubpathExplicit, nil
	case "heuristic":
		return SubpathHeuristic, nil
	}
	return SubpathExplicit, fmt.Errorf("unknown sub-path mode: %q", s)
}

// minSamples is the lower bound of points sampled from a segment,
// which keeps near zero length segments from vanishing.
const minSamples = 2

// maxSamples bounds the points sampled from a single segment. The sample count grows
// with the outline length, so very large bounding boxes would otherwise produce
// millions of points per segment.
const maxSamples = 1 << 16

// maxCoord is the largest mapped coordinate magnitude, in pixels, handed to the rasterizer.
const maxCoord = 1 << 20

// Polygon is a closed sequence of points in pixel space.
type Polygon []Point

// Translate returns a copy of the polygon shifted by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return out
}

// Flattener converts path data into polygons by sampling every segment
// a number of times proportional to its length.
type Flattener struct {
	// Density is the number of points sampled per unit of outline length.
	Density float64
	// Tolerance is the distance in pixels above which two points are considered
	// discontinuous. It is only used by SubpathHeuristic.
	Tolerance float64
	Mode      SubpathMode
}

// NewFlattener returns a flattener with the default density and tolerance.
func NewFlattener(mode SubpathMode) *Flattener {
	return &Flattener{
		Density:   DefaultDensity,
		Tolerance: SubpathTolerance,
		Mode:      mode,
	}
}

// Samples returns the number of points sampled from the segment.
func (f *Flattener) Samples(seg Segment) int {
	density := f.Density
	if density <= 0 {
		density = DefaultDensity
	}
	n := math.Floor(seg.Length() * density)
	if !(n < maxSamples) {
		return maxSamples
	}
	return utils.Max(minSamples, int(n))
}

// Flatten decodes the path data and converts it into polygons mapped through the transform.
// Polygons with less than three points are discarded. Points mapped outside
// ±maxCoord pixels make the whole path malformed.
func (f *Flattener) Flatten(data string, tr Transform) ([]Polygon, error) {
	subpaths, err := DecodePath(data)
	if err != nil {
		return nil, err
	}

	var polys []Polygon
	if f.Mode == SubpathHeuristic {
		polys = f.flattenHeuristic(subpaths, tr)
	} else {
		polys = f.flattenExplicit(subpaths, tr)
	}
	for _, poly := range polys {
		for _, pt := range poly {
			if !inRange(pt.X) || !inRange(pt.Y) {
				return nil, fmt.Errorf("%w: coordinates out of range (%g, %g)", ErrMalformedOutline, pt.X, pt.Y)
			}
		}
	}
	return polys, nil
}

// inRange reports whether v is a finite coordinate the rasterizer can handle. NaN is rejected too.
func inRange(v float64) bool {
	return v >= -maxCoord && v <= maxCoord
}

func (f *Flattener) flattenExplicit(subpaths []Subpath, tr Transform) []Polygon {
	polys := make([]Polygon, 0, len(subpaths))
	for _, sp := range subpaths {
		poly := Polygon{tr.Apply(sp.Segments[0].Start())}
		for _, seg := range sp.Segments {
			poly = f.sample(poly, seg, tr)
		}
		if len(poly) >= 3 {
			polys = append(polys, poly)
		}
	}
	return polys
}

func (f *Flattener) flattenHeuristic(subpaths []Subpath, tr Transform) []Polygon {
	var (
		polys []Polygon
		poly  Polygon
	)
	tol := f.Tolerance
	if tol <= 0 {
		tol = SubpathTolerance
	}

	for _, sp := range subpaths {
		for _, seg := range sp.Segments {
			start := tr.Apply(seg.Start())
			if len(poly) > 0 {
				last := poly[len(poly)-1]
				if utils.Abs(start.X-last.X) > tol || utils.Abs(start.Y-last.Y) > tol {
					if len(poly) >= 3 {
						polys = append(polys, poly)
					}
					poly = nil
				}
			}
			if len(poly) == 0 {
				poly = append(poly, start)
			}
			poly = f.sample(poly, seg, tr)
		}
	}
	if len(poly) >= 3 {
		polys = append(polys, poly)
	}
	return polys
}

// sample appends the points at t = i/n, i = 1..n, of the segment to the polygon.
func (f *Flattener) sample(poly Polygon, seg Segment, tr Transform) Polygon {
	n := f.Samples(seg)
	for i := 1; i <= n; i++ {
		poly = append(poly, tr.Apply(seg.Eval(float64(i)/float64(n))))
	}
	return poly
}

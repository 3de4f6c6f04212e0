package iconbadge

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// Subpath is a contour of a decoded path, started by a move command.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

// DecodePath decodes SVG path data into its sub-paths.
// The supported verbs are move, line (including the horizontal and vertical forms),
// cubic and quadratic curves (including their smooth forms) and close,
// both absolute and relative, with implicit command repetition.
// Any other verb results in an ErrUnsupportedCommand error.
func DecodePath(data string) ([]Subpath, error) {
	d := &pathDecoder{data: []byte(data)}
	for d.err == nil && d.more() {
		d.step()
	}
	if d.err != nil {
		return nil, d.err
	}
	d.flush()

	return d.subpaths, nil
}

type pathDecoder struct {
	data []byte
	pos  int
	err  error

	verb   byte // last verb, as found in the data
	prev   byte // upper-cased verb of the last emitted segment
	start  Point
	cur    Point
	ctrl   Point // last control point, reflected by the smooth curve verbs
	active *Subpath

	subpaths []Subpath
}

// more skips the separators and reports whether there is data left.
func (d *pathDecoder) more() bool {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			d.pos++
		default:
			return true
		}
	}
	return false
}

func (d *pathDecoder) step() {
	c := d.data[d.pos]
	if !isNumStart(c) {
		d.verb = c
		d.pos++
	} else if d.verb == 0 {
		d.fail(ErrMalformedOutline, 0, "path data should start with a command")
		return
	}
	cmdPos := d.pos - 1

	rel := d.verb >= 'a' && d.verb <= 'z'
	verb := d.verb
	if rel {
		verb -= 'a' - 'A'
	}

	offset := func(p Point) Point {
		if rel {
			return p.Add(d.cur)
		}
		return p
	}

	switch verb {
	case 'M':
		p := offset(d.point())
		if d.err != nil {
			return
		}
		d.moveTo(p)
		// Subsequent coordinate pairs are implicit line-to commands.
		if rel {
			d.verb = 'l'
		} else {
			d.verb = 'L'
		}
	case 'L':
		p := offset(d.point())
		d.add('L', Line{P0: d.cur, P1: p})
	case 'H':
		x := d.number()
		if rel {
			x += d.cur.X
		}
		d.add('L', Line{P0: d.cur, P1: Point{X: x, Y: d.cur.Y}})
	case 'V':
		y := d.number()
		if rel {
			y += d.cur.Y
		}
		d.add('L', Line{P0: d.cur, P1: Point{X: d.cur.X, Y: y}})
	case 'C':
		c1 := offset(d.point())
		c2 := offset(d.point())
		p := offset(d.point())
		d.add('C', CubicBez{P0: d.cur, P1: c1, P2: c2, P3: p})
		d.ctrl = c2
	case 'S':
		c1 := d.cur
		if d.prev == 'C' {
			c1 = d.cur.Mul(2).Sub(d.ctrl)
		}
		c2 := offset(d.point())
		p := offset(d.point())
		d.add('C', CubicBez{P0: d.cur, P1: c1, P2: c2, P3: p})
		d.ctrl = c2
	case 'Q':
		c1 := offset(d.point())
		p := offset(d.point())
		d.add('Q', QuadBez{P0: d.cur, P1: c1, P2: p})
		d.ctrl = c1
	case 'T':
		c1 := d.cur
		if d.prev == 'Q' {
			c1 = d.cur.Mul(2).Sub(d.ctrl)
		}
		p := offset(d.point())
		d.add('Q', QuadBez{P0: d.cur, P1: c1, P2: p})
		d.ctrl = c1
	case 'Z':
		d.closePath()
		// A close command takes no arguments, a new verb is required.
		d.verb = 0
	default:
		d.pos = cmdPos
		d.fail(ErrUnsupportedCommand, d.data[cmdPos], "unknown verb")
	}
}

func (d *pathDecoder) moveTo(p Point) {
	d.flush()
	d.start, d.cur = p, p
	d.prev = 'M'
	d.active = &Subpath{}
}

// add appends the segment to the active sub-path. The segment's end point becomes the current point.
func (d *pathDecoder) add(kind byte, seg Segment) {
	if d.err != nil {
		return
	}
	if d.active == nil {
		if d.prev == 0 {
			d.fail(ErrMalformedOutline, kind, "path data should start with a move command")
			return
		}
		// Drawing after a close command starts a new sub-path at the previous start point.
		d.active = &Subpath{}
	}
	d.active.Segments = append(d.active.Segments, seg)
	d.cur = seg.End()
	d.prev = kind
}

func (d *pathDecoder) closePath() {
	if d.active == nil {
		d.cur = d.start
		return
	}
	if d.cur != d.start {
		d.active.Segments = append(d.active.Segments, Line{P0: d.cur, P1: d.start})
	}
	d.active.Closed = true
	d.flush()
	d.cur = d.start
	d.prev = 'Z'
}

// flush moves the active sub-path into the decoded list, dropping it if it has no segments.
func (d *pathDecoder) flush() {
	if d.active != nil && len(d.active.Segments) > 0 {
		d.subpaths = append(d.subpaths, *d.active)
	}
	d.active = nil
}

func (d *pathDecoder) point() Point {
	x := d.number()
	y := d.number()
	return Point{X: x, Y: y}
}

func (d *pathDecoder) number() float64 {
	if d.err != nil {
		return 0
	}
	if !d.more() {
		d.fail(ErrMalformedOutline, d.verb, "unexpected end of path data")
		return 0
	}
	f, n := strconv.ParseFloat(d.data[d.pos:])
	if n == 0 {
		d.fail(ErrMalformedOutline, d.verb, "expected number")
		return 0
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		d.fail(ErrMalformedOutline, d.verb, "number out of range")
		return 0
	}
	d.pos += n
	return f
}

func (d *pathDecoder) fail(err error, cmd byte, msg string) {
	if d.err == nil {
		d.err = &PathError{Pos: d.pos, Cmd: cmd, Err: err, msg: msg}
	}
}

func isNumStart(c byte) bool {
	return c == '.' || c == '-' || c == '+' || ('0' <= c && c <= '9')
}

package iconbadge

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// BoundingBox is the coordinate space of an outline, as declared by its viewBox.
type BoundingBox struct {
	X, Y          float64
	Width, Height float64
}

// Outline is a parsed vector outline: its bounding box and the
// path data of each fill region, in document order.
type Outline struct {
	Box   BoundingBox
	Paths []string
}

// ParseOutline extracts the bounding box and the path data strings from an SVG document.
// The path data itself is not validated here, this is done when the paths are decoded.
func ParseOutline(text string) (*Outline, error) {
	var (
		outline Outline
		viewBox string
		found   bool
	)

	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutline, err)
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch el.Name.Local {
		case "svg":
			if found {
				continue
			}
			if v, ok := attr(el, "viewBox"); ok {
				viewBox, found = v, true
			}
		case "path":
			if d, ok := attr(el, "d"); ok && len(strings.TrimSpace(d)) > 0 {
				outline.Paths = append(outline.Paths, d)
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: no viewBox found", ErrMalformedOutline)
	}
	box, err := parseViewBox(viewBox)
	if err != nil {
		return nil, err
	}
	outline.Box = box

	return &outline, nil
}

// parseViewBox parses the four viewBox values: min-x, min-y, width and height.
func parseViewBox(s string) (BoundingBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: viewBox %q should have four values", ErrMalformedOutline, s)
	}

	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			return BoundingBox{}, fmt.Errorf("%w: invalid viewBox value %q", ErrMalformedOutline, f)
		}
		v[i] = n
	}

	bb := BoundingBox{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if !(bb.Width > 0 && bb.Height > 0) {
		return BoundingBox{}, fmt.Errorf("%w: %gx%g", ErrInvalidBoundingBox, bb.Width, bb.Height)
	}
	return bb, nil
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

package iconbadge

import "math"

// Transform is a uniform scale followed by a translation,
// mapping outline coordinates into a destination pixel square.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitTransform returns the transform which fits the bounding box into a size×size square,
// preserving the aspect ratio and centering the content along the shorter axis.
func FitTransform(bb BoundingBox, size float64) Transform {
	scale := size / math.Max(bb.Width, bb.Height)

	return Transform{
		Scale:   scale,
		OffsetX: (size-bb.Width*scale)/2 - bb.X*scale,
		OffsetY: (size-bb.Height*scale)/2 - bb.Y*scale,
	}
}

// Apply maps a point from outline space into pixel space.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: p.X*t.Scale + t.OffsetX,
		Y: p.Y*t.Scale + t.OffsetY,
	}
}

package iconbadge

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/esimov/iconbadge/utils"
)

// BorderColor is the color of the badge outline and of the icon.
var BorderColor = color.NRGBA{A: 0xff}

// layout holds the working resolution geometry of a single render.
type layout struct {
	ss         int     // supersampling factor
	canvasSize int     // canvas side, in working pixels
	border     float64 // border thickness, in working pixels
	iconSize   float64 // side of the square the outline is fitted into
	iconOffset float64 // distance of the icon square from the canvas edges
}

// newLayout computes the geometry of the request at the ss supersampling factor.
func newLayout(req RenderRequest, ss int) layout {
	canvasSize := req.Size * ss

	border := req.Border * float64(ss)
	if req.Border <= 0 {
		border = math.Max(MinBorder, float64(canvasSize)*BorderRatio)
	}
	iconSize := float64(canvasSize) * req.Scale

	return layout{
		ss:         ss,
		canvasSize: canvasSize,
		border:     border,
		iconSize:   iconSize,
		iconOffset: (float64(canvasSize) - iconSize) / 2,
	}
}

// radius returns the outer radius of the badge.
func (l layout) radius() float64 {
	return (float64(l.canvasSize) - l.border) / 2
}

// compose draws the badge and the icon polygons on a new canvas at working resolution.
// The polygons are expected in icon space, i.e. fitted into the icon square.
func compose(l layout, fill color.NRGBA, polys []Polygon) *image.RGBA {
	size := l.canvasSize
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))

	// The badge is always opaque.
	fill.A = 0xff

	center := float64(size) / 2
	// The border is stroked on the inner side of the badge radius.
	ring := utils.Max(l.radius()-l.border/2, 0)

	scanner := rasterx.NewScannerGV(size, size, canvas, canvas.Bounds())

	filler := rasterx.NewFiller(size, size, scanner)
	rasterx.AddCircle(center, center, ring, filler)
	filler.SetColor(fill)
	filler.Draw()
	filler.Clear()

	// The outline is drawn last, on top of the fill.
	dasher := rasterx.NewDasher(size, size, scanner)
	dasher.SetStroke(fixed.Int26_6(l.border*64), 0, rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	rasterx.AddCircle(center, center, ring, dasher)
	dasher.SetColor(BorderColor)
	dasher.Draw()
	dasher.Clear()

	Logger().Debug("badge drawn",
		"canvas", size,
		"border", l.border,
		"radius", l.radius(),
	)

	// Each polygon is filled on its own, in order, so overlapping
	// sub-paths produce the union of their areas.
	src := image.NewUniform(BorderColor)
	r := vector.NewRasterizer(size, size)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		poly = poly.Translate(l.iconOffset, l.iconOffset)

		r.Reset(size, size)
		r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, pt := range poly[1:] {
			r.LineTo(float32(pt.X), float32(pt.Y))
		}
		r.ClosePath()
		r.Draw(canvas, canvas.Bounds(), src, image.Point{})
	}

	return canvas
}

package iconbadge

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Rendering defaults.
const (
	DefaultSize        = 220
	DefaultIconScale   = 0.55
	DefaultSupersample = 4
	// DefaultDensity is the number of points sampled per outline unit when flattening curves.
	DefaultDensity = 0.15
	// BorderRatio is the border thickness relative to the canvas side, when no border is requested.
	BorderRatio = 0.054
	// MinBorder is the minimum derived border thickness, in working pixels.
	MinBorder = 2
	// SubpathTolerance is the discontinuity distance, in pixels, of SubpathHeuristic.
	SubpathTolerance = 1.0
	// DefaultFillColor is the badge color of icons without an explicit color.
	DefaultFillColor = "#888888"
)

// RenderRequest describes a single icon render.
type RenderRequest struct {
	// Name identifies the outline in the source.
	Name string
	// Fill is the badge color. Its alpha channel is ignored, the badge is always opaque.
	Fill color.NRGBA
	// Size is the side of the output image in pixels.
	Size int
	// Scale is the icon size relative to the badge.
	Scale float64
	// Border is the border thickness in output pixels. Zero derives it from the size.
	Border float64
}

// Processor renders icon badges.
type Processor struct {
	Source      OutlineSource
	Density     float64
	Supersample int
	Subpaths    SubpathMode
	Filter      string
}

// NewProcessor returns a Processor with the default options, reading the outlines from src.
func NewProcessor(src OutlineSource) *Processor {
	return &Processor{
		Source:      src,
		Density:     DefaultDensity,
		Supersample: DefaultSupersample,
		Subpaths:    SubpathExplicit,
		Filter:      DefaultFilter,
	}
}

// normalize fills in the zero fields of the request and validates the rest.
func (req RenderRequest) normalize() (RenderRequest, error) {
	if req.Size == 0 {
		req.Size = DefaultSize
	}
	if req.Scale == 0 {
		req.Scale = DefaultIconScale
	}
	switch {
	case req.Name == "":
		return req, errors.New("missing icon name")
	case req.Size < 0:
		return req, fmt.Errorf("invalid image size: %d", req.Size)
	case req.Scale < 0 || req.Scale > 1:
		return req, fmt.Errorf("invalid icon scale: %g", req.Scale)
	case req.Border < 0:
		return req, fmt.Errorf("invalid border width: %g", req.Border)
	}
	return req, nil
}

// Render produces the badge image of the request.
// On failure no image is returned.
func (p *Processor) Render(ctx context.Context, req RenderRequest) (*image.NRGBA, error) {
	req, err := req.normalize()
	if err != nil {
		return nil, err
	}
	if p.Source == nil {
		return nil, fmt.Errorf("%w: no outline source", ErrOutlineUnavailable)
	}
	filter, err := ResampleFilter(p.Filter)
	if err != nil {
		return nil, err
	}
	ss := p.Supersample
	if ss <= 0 {
		ss = DefaultSupersample
	}

	text, err := p.Source.Outline(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	outline, err := ParseOutline(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Name, err)
	}

	l := newLayout(req, ss)
	polys, err := p.flatten(outline, l.iconSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canvas := compose(l, req.Fill, polys)

	return Downsample(canvas, req.Size, filter), nil
}

// flatten converts every path of the outline into polygons fitted into a size×size square.
// All the paths share the same transform.
func (p *Processor) flatten(o *Outline, size float64) ([]Polygon, error) {
	f := NewFlattener(p.Subpaths)
	if p.Density > 0 {
		f.Density = p.Density
	}
	tr := FitTransform(o.Box, size)

	var polys []Polygon
	for i, d := range o.Paths {
		pp, err := f.Flatten(d, tr)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		Logger().Debug("path flattened", "path", i, "polygons", len(pp))
		polys = append(polys, pp...)
	}
	return polys, nil
}

// Process renders the request and encodes the image into w.
// The output format is deduced from the file name when w is a file, PNG otherwise.
func (p *Processor) Process(ctx context.Context, req RenderRequest, w io.Writer) error {
	img, err := p.Render(ctx, req)
	if err != nil {
		return err
	}
	return Encode(w, img)
}

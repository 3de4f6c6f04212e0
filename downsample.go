package iconbadge

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultFilter is the resample filter used to reduce the canvas to the output size.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"gaussian":   imaging.Gaussian,
}

// ResampleFilter returns the smoothing filter registered under the name.
// Only smoothing filters are registered.
func ResampleFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unsupported resample filter: %q", name)
	}
	return f, nil
}

// Downsample reduces the canvas to a size×size image using the resample filter.
func Downsample(canvas image.Image, size int, filter imaging.ResampleFilter) *image.NRGBA {
	b := canvas.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return imaging.Clone(canvas)
	}
	return imaging.Resize(canvas, size, size, filter)
}

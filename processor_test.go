package iconbadge

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const squareIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><path d="M0 0H100V100H0Z"/></svg>`

// circleIcon traces a circle filling its viewBox with four cubic curves.
const circleIcon = `<svg viewBox="0 0 100 100"><path d="M50 0` +
	`C77.614 0 100 22.386 100 50C100 77.614 77.614 100 50 100` +
	`C22.386 100 0 77.614 0 50C0 22.386 22.386 0 50 0Z"/></svg>`

var red = color.NRGBA{R: 0xff, A: 0xff}

// newTestProcessor returns a processor serving a fixed set of outlines.
func newTestProcessor() *Processor {
	c := NewOutlineCache(nil)
	c.Put("square", squareIcon)
	c.Put("flat", `<svg viewBox="0 0 0 100"><path d="M0 0H100V100H0Z"/></svg>`)
	c.Put("arc", `<svg viewBox="0 0 10 10"><path d="M0 0A5 5 0 0 1 10 10Z"/></svg>`)
	c.Put("nobox", `<svg><path d="M0 0H10V10Z"/></svg>`)
	c.Put("circle", circleIcon)
	c.Put("overflow", `<svg viewBox="0 0 10 10"><path d="M0 0 L1e400 0 L0 1 Z"/></svg>`)
	c.Put("infbox", `<svg viewBox="-Inf 0 10 10"><path d="M0 0H10V10Z"/></svg>`)
	c.Put("far", `<svg viewBox="0 0 1e-200 1e-200"><path d="M0 0 L1e200 0 L0 1 Z"/></svg>`)
	c.Freeze()

	return NewProcessor(c)
}

// at returns the pixel at the given distance from the image center, on the horizontal axis.
func at(img *image.NRGBA, dist int) color.NRGBA {
	c := img.Bounds().Dx() / 2
	return img.NRGBAAt(c+dist, c)
}

// near reports whether every channel of the two colors differs by at most tolerance.
func near(want, got color.NRGBA, tolerance uint8) bool {
	diff := func(a, b uint8) uint8 {
		if a > b {
			return a - b
		}
		return b - a
	}
	return diff(want.R, got.R) <= tolerance && diff(want.G, got.G) <= tolerance &&
		diff(want.B, got.B) <= tolerance && diff(want.A, got.A) <= tolerance
}

func assertColor(t *testing.T, want, got color.NRGBA, tolerance uint8) {
	t.Helper()

	if !near(want, got, tolerance) {
		t.Errorf("expected color %v, got %v", want, got)
	}
}

func TestProcessor_RenderBadge(t *testing.T) {
	p := newTestProcessor()

	img, err := p.Render(context.Background(), RenderRequest{Name: "square", Fill: red, Size: 512})
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 512), img.Bounds())

	// Outer radius of the badge and inner radius of the border, in output pixels.
	border := 512 * 4 * BorderRatio
	radius := (512*4 - border) / 2 / 4
	inner := radius - border/4

	black := color.NRGBA{A: 0xff}
	// The icon covers the center.
	assertColor(t, black, at(img, 0), 8)
	// Between the icon and the border the badge shows the fill color.
	assertColor(t, red, at(img, int(0.7*radius)), 8)
	// The border ring.
	assertColor(t, black, at(img, int((radius+inner)/2)), 8)
	// Outside the badge the image is transparent.
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), at(img, int(math.Ceil(radius))+4).A)
}

func TestProcessor_RenderCircleBadge(t *testing.T) {
	p := newTestProcessor()

	img, err := p.Render(context.Background(), RenderRequest{Name: "circle", Fill: red, Size: 512})
	assert.NoError(t, err)

	border := 512 * 4 * BorderRatio
	radius := (512*4 - border) / 2 / 4

	black := color.NRGBA{A: 0xff}
	assertColor(t, black, at(img, 0), 8)
	assertColor(t, red, at(img, int(0.7*radius)), 8)

	// At 90% of the radius the pixel belongs either to the fill or to the border.
	px := at(img, int(0.9*radius))
	assert.True(t, near(red, px, 8) || near(black, px, 8), "got %v", px)
}

func TestProcessor_FillIsOpaque(t *testing.T) {
	p := newTestProcessor()

	img, err := p.Render(context.Background(), RenderRequest{
		Name: "square",
		Fill: color.NRGBA{B: 0xff, A: 0x10},
		Size: 256,
	})
	assert.NoError(t, err)
	assertColor(t, color.NRGBA{B: 0xff, A: 0xff}, at(img, 88), 8)
}

func TestProcessor_Idempotent(t *testing.T) {
	p := newTestProcessor()
	req := RenderRequest{Name: "square", Fill: red, Size: 128}

	img1, err := p.Render(context.Background(), req)
	assert.NoError(t, err)
	img2, err := p.Render(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, img1.Pix, img2.Pix)
}

func TestProcessor_Defaults(t *testing.T) {
	p := newTestProcessor()

	img, err := p.Render(context.Background(), RenderRequest{Name: "square"})
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultSize, DefaultSize), img.Bounds())
}

func TestProcessor_RenderErrors(t *testing.T) {
	p := newTestProcessor()

	testCases := []struct {
		name string
		req  RenderRequest
		want error
	}{
		{"invalid bounding box", RenderRequest{Name: "flat", Size: 64}, ErrInvalidBoundingBox},
		{"unsupported command", RenderRequest{Name: "arc", Size: 64}, ErrUnsupportedCommand},
		{"missing viewBox", RenderRequest{Name: "nobox", Size: 64}, ErrMalformedOutline},
		{"unknown icon", RenderRequest{Name: "missing", Size: 64}, ErrOutlineUnavailable},
		{"infinite coordinate", RenderRequest{Name: "overflow", Size: 64}, ErrMalformedOutline},
		{"infinite viewBox", RenderRequest{Name: "infbox", Size: 64}, ErrMalformedOutline},
		{"coordinate out of range", RenderRequest{Name: "far", Size: 64}, ErrMalformedOutline},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := p.Render(context.Background(), tc.req)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProcessor_InvalidRequest(t *testing.T) {
	p := newTestProcessor()

	for _, req := range []RenderRequest{
		{},
		{Name: "square", Size: -1},
		{Name: "square", Scale: 1.5},
		{Name: "square", Border: -2},
	} {
		img, err := p.Render(context.Background(), req)
		assert.Nil(t, img)
		assert.Error(t, err)
	}

	p.Filter = "nearest"
	_, err := p.Render(context.Background(), RenderRequest{Name: "square"})
	assert.Error(t, err)
}

func TestProcessor_Canceled(t *testing.T) {
	p := newTestProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := p.Render(ctx, RenderRequest{Name: "square", Size: 64})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessor_ProcessEncodesPNG(t *testing.T) {
	p := newTestProcessor()
	var buf bytes.Buffer

	err := p.Process(context.Background(), RenderRequest{Name: "square", Fill: red, Size: 64}, &buf)
	assert.NoError(t, err)

	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

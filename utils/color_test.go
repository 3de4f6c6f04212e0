package utils

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_ParseColor(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FF0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#f0c", color.NRGBA{R: 0xff, G: 0x00, B: 0xcc, A: 0xff}},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}},
		{"Teal", color.NRGBA{R: 0x00, G: 0x80, B: 0x80, A: 0xff}},
		{" black ", color.NRGBA{A: 0xff}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseColor(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, c)
		})
	}
}

func TestColor_ParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgb(1,2,300)", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

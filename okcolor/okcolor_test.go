package okcolor

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhiteAndBlack(t *testing.T) {
	white := labOf(color.White)
	assert.InDelta(t, 1.0, white.L, 1e-4)
	assert.InDelta(t, 0.0, white.A, 1e-4)
	assert.InDelta(t, 0.0, white.B, 1e-4)

	black := labOf(color.Black)
	assert.InDelta(t, 0.0, black.L, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{0xff, 0x00, 0x00, 0xff},
		{0x00, 0x80, 0x40, 0xff},
		{0x12, 0x34, 0x56, 0xff},
		{0xc0, 0xc0, 0xc0, 0xff},
	} {
		lab := labOf(c)
		got := color.RGBAModel.Convert(lab).(color.RGBA)
		assert.InDelta(t, c.R, got.R, 1, "%v", c)
		assert.InDelta(t, c.G, got.G, 1, "%v", c)
		assert.InDelta(t, c.B, got.B, 1, "%v", c)

		lch := labOf(c).LCh()
		got = color.RGBAModel.Convert(lch).(color.RGBA)
		assert.InDelta(t, c.R, got.R, 1, "%v", c)
	}
}

func TestClipChroma(t *testing.T) {
	wild := LCh{L: 0.7, C: 0.5, H: 1}
	assert.False(t, wild.Lab().Linear().InGamut())

	clipped := ClipChroma(wild)
	assert.True(t, clipped.Linear().InGamut())
	lch := clipped.LCh()
	assert.InDelta(t, 0.7, lch.L, 1e-9)
	assert.InDelta(t, 1.0, lch.H, 1e-6)
	assert.Less(t, lch.C, 0.5)

	tame := LCh{L: 0.5, C: 0.01, H: 2}
	assert.Equal(t, tame.Lab(), ClipChroma(tame))
}

func TestWheel(t *testing.T) {
	pal := Wheel(8, 0.75, 0.15)
	assert.Len(t, pal, 8)

	for i, c := range pal {
		lch := c.(LCh)
		assert.InDelta(t, 2*math.Pi*float64(i)/8, lch.H, 1e-12)
		_, _, _, a := c.RGBA()
		assert.Equal(t, uint32(0xffff), a)
	}
	assert.NotEqual(t, color.RGBAModel.Convert(pal[0]), color.RGBAModel.Convert(pal[4]))
}

// labOf and its helpers invert the sRGB path of Lab.RGBA for round trips.
func labOf(c color.Color) Lab {
	return labFromLinear(toLinearRGB(c))
}

// labFromLinear converts a linear sRGB colour to OKLab.
func labFromLinear(col LinearRGB) Lab {
	l := math.Cbrt(0.4122214708*col.R + 0.5363325363*col.G + 0.0514459929*col.B)
	m := math.Cbrt(0.2119034982*col.R + 0.6806995451*col.G + 0.1073969566*col.B)
	s := math.Cbrt(0.0883024619*col.R + 0.2817188376*col.G + 0.6299787005*col.B)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

func toLinearRGB(c color.Color) LinearRGB {
	r, g, b, _ := c.RGBA()
	return LinearRGB{
		R: toLinear(float64(r) / 0xffff),
		G: toLinear(float64(g) / 0xffff),
		B: toLinear(float64(b) / 0xffff),
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

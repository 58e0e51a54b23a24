// based on:
// https://bottosson.github.io/posts/oklab/
// https://bottosson.github.io/posts/colorwrong/#what-can-we-do%3F

// Package okcolor turns OKLab and OKLCh colours into sRGB.
package okcolor

import (
	"image/color"
	"math"
)

type Lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

type LCh struct {
	L float64 // perceived lightness
	C float64 // chroma
	H float64 // hue, radians
}

type LinearRGB struct {
	R, G, B float64
}

// Linear converts to linear sRGB. The result may be out of gamut.
func (lc Lab) Linear() LinearRGB {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	l, m, s = l*l*l, m*m*m, s*s*s

	return LinearRGB{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}

func (lc Lab) LCh() LCh {
	return LCh{
		L: lc.L,
		C: math.Hypot(lc.A, lc.B),
		H: math.Atan2(lc.B, lc.A),
	}
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	return ClipChroma(lc.LCh()).Linear().RGBA()
}

func (lc LCh) Lab() Lab {
	return Lab{
		L: lc.L,
		A: lc.C * math.Cos(lc.H),
		B: lc.C * math.Sin(lc.H),
	}
}

func (lc LCh) RGBA() (uint32, uint32, uint32, uint32) {
	return ClipChroma(lc).Linear().RGBA()
}

// InGamut reports whether the colour fits the sRGB cube.
func (lc LinearRGB) InGamut() bool {
	return lc.R >= 0 && lc.R <= 1 && lc.G >= 0 && lc.G <= 1 && lc.B >= 0 && lc.B <= 1
}

// RGBA clamps each channel and applies the sRGB transfer curve.
func (lc LinearRGB) RGBA() (uint32, uint32, uint32, uint32) {
	return uint32(fromLinear(lc.R) * 0xffff),
		uint32(fromLinear(lc.G) * 0xffff),
		uint32(fromLinear(lc.B) * 0xffff),
		0xffff
}

const clipSteps = 24

// ClipChroma pulls an out of gamut colour towards the grey axis, keeping its
// lightness and hue, and returns the most saturated in-gamut Lab found.
func ClipChroma(lc LCh) Lab {
	lc.L = min(max(lc.L, 0), 1)
	if lab := lc.Lab(); lab.Linear().InGamut() {
		return lab
	}

	lo, hi := 0.0, lc.C
	for range clipSteps {
		mid := (lo + hi) / 2
		if (LCh{L: lc.L, C: mid, H: lc.H}).Lab().Linear().InGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return LCh{L: lc.L, C: lo, H: lc.H}.Lab()
}

// Wheel returns n colours of equal lightness and chroma spaced evenly
// around the hue circle, starting at hue 0.
func Wheel(n int, l, c float64) color.Palette {
	pal := make(color.Palette, n)
	for i := range pal {
		pal[i] = LCh{L: l, C: c, H: 2 * math.Pi * float64(i) / float64(n)}
	}
	return pal
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	x = min(max(x, 0), 1)
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}

package coloring

import (
	"image/color"

	"mandelview/okcolor"
)

const (
	oklchSteps     = 64
	oklchLightness = 0.75
	oklchChroma    = 0.15
)

var oklchWheel = packAll(okcolor.Wheel(oklchSteps, oklchLightness, oklchChroma))

// Palette colours escaping points by cycling through a fixed list of
// colours, v % len(Colors), and paints points at the cap with Cap.
type Palette struct {
	Label  string
	Colors []uint32
	Cap    uint32
}

var _ Coloring = Palette{}

// NewPalette packs pal into a Palette scheme. An empty palette renders every
// point in the cap colour.
func NewPalette(name string, pal color.Palette, capColor color.Color) Palette {
	p := Palette{
		Label:  name,
		Colors: packAll(pal),
	}
	if capColor != nil {
		p.Cap = Pack(capColor)
	}
	return p
}

func (p Palette) Color(v, max uint32) uint32 {
	if v >= max || len(p.Colors) == 0 {
		return p.Cap
	}
	return p.Colors[v%uint32(len(p.Colors))]
}

func (p Palette) Name() string { return p.Label }

func packAll(pal color.Palette) []uint32 {
	res := make([]uint32, len(pal))
	for i, c := range pal {
		res[i] = Pack(c)
	}
	return res
}

// Package coloring turns escape values into packed 0x00RRGGBB colours.
package coloring

import (
	"fmt"
	"image/color"
)

// Coloring maps an escape value v and the iteration cap max to a packed
// 0x00RRGGBB colour. Implementations are stateless and must accept v >= max.
type Coloring interface {
	Color(v, max uint32) uint32
	Name() string
}

// Scheme is one of the built-in colourings. Values are stable: new schemes
// are appended, existing ones never renumbered.
type Scheme int

const (
	RGB18 Scheme = iota
	RGB3
	RedBlue16
	BlackWhite
	OldBlackWhite
	OkLCh

	numSchemes
)

var _ Coloring = Scheme(0)

var schemeNames = [numSchemes]string{
	RGB18:         "rgb18",
	RGB3:          "rgb3",
	RedBlue16:     "red-blue16",
	BlackWhite:    "black-white",
	OldBlackWhite: "old-bw",
	OkLCh:         "oklch",
}

var rgb18 = [18]uint32{
	0xff3f3f, 0xff7f3f, 0xffbf3f, 0xffff3f, 0xbfff3f, 0x7fff3f,
	0x3fff3f, 0x3fff7f, 0x3fffbf, 0x3fffff, 0x3fbfff, 0x3f7fff,
	0x3f3fff, 0x7f3fff, 0xbf3fff, 0xff3fff, 0xff3fbf, 0xff3f7f,
}

var redBlue16 = [16]uint32{
	0x000000, 0x400000, 0x800000, 0xc00000,
	0xff0000, 0xff0040, 0xff0080, 0xff00c0,
	0xff00ff, 0xc000ff, 0x8000ff, 0x4000ff,
	0x0000ff, 0x0000c0, 0x000080, 0x000040,
}

var rgb3 = [3]uint32{0xff0000, 0x00ff00, 0x0000ff}

const (
	black = 0x000000
	white = 0xffffff
	gray  = 0x808080
	dark  = 0x404040
)

func (s Scheme) Color(v, max uint32) uint32 {
	switch s {
	case RGB18:
		if v >= max {
			return black
		}
		return rgb18[v%uint32(len(rgb18))]
	case RGB3:
		if v >= max {
			return black
		}
		return rgb3[v%uint32(len(rgb3))]
	case RedBlue16:
		if v >= max {
			return dark
		}
		return redBlue16[v%uint32(len(redBlue16))]
	case BlackWhite:
		if v >= max {
			return gray
		}
		return parity(v)
	case OldBlackWhite:
		return parity(v)
	case OkLCh:
		if v >= max {
			return black
		}
		return oklchWheel[v%uint32(len(oklchWheel))]
	}
	return black
}

func parity(v uint32) uint32 {
	if v%2 == 1 {
		return white
	}
	return black
}

func (s Scheme) Name() string {
	if s < 0 || s >= numSchemes {
		return fmt.Sprintf("scheme(%d)", int(s))
	}
	return schemeNames[s]
}

func (s Scheme) String() string { return s.Name() }

// Cycle returns the colours a scheme steps through for escaping points, in
// the order v % len(cycle) picks them. The cap colour is not included.
func (s Scheme) Cycle() color.Palette {
	var packed []uint32
	switch s {
	case RGB18:
		packed = rgb18[:]
	case RGB3:
		packed = rgb3[:]
	case RedBlue16:
		packed = redBlue16[:]
	case BlackWhite, OldBlackWhite:
		packed = []uint32{black, white}
	case OkLCh:
		packed = oklchWheel[:]
	}

	pal := make(color.Palette, len(packed))
	for i, p := range packed {
		pal[i] = Unpack(p)
	}
	return pal
}

// Len returns the number of built-in schemes.
func Len() int { return int(numSchemes) }

// Names lists the built-in scheme names by index.
func Names() []string {
	return append([]string(nil), schemeNames[:]...)
}

// ByIndex returns the built-in scheme with index i.
func ByIndex(i int) (Scheme, error) {
	if i < 0 || i >= int(numSchemes) {
		return 0, fmt.Errorf("unknown coloring index: %d", i)
	}
	return Scheme(i), nil
}

// ByName returns the built-in scheme called name.
func ByName(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("unknown coloring: %q", name)
}

// Pack converts any colour to a 0x00RRGGBB value, dropping alpha.
func Pack(c color.Color) uint32 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
}

// Unpack converts a 0x00RRGGBB value to an opaque colour.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xff}
}

// Package palette loads colour lists for palette-backed colourings, either
// by built-in name or from RIFF "PAL " files.
package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"os"
	"slices"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
	"gray16": gray(16),
	"vga16": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xaa, 0xff},
		color.RGBA{0x00, 0xaa, 0x00, 0xff},
		color.RGBA{0x00, 0xaa, 0xaa, 0xff},
		color.RGBA{0xaa, 0x00, 0x00, 0xff},
		color.RGBA{0xaa, 0x00, 0xaa, 0xff},
		color.RGBA{0xaa, 0x55, 0x00, 0xff},
		color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
		color.RGBA{0x55, 0x55, 0x55, 0xff},
		color.RGBA{0x55, 0x55, 0xff, 0xff},
		color.RGBA{0x55, 0xff, 0x55, 0xff},
		color.RGBA{0x55, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x55, 0x55, 0xff},
		color.RGBA{0xff, 0x55, 0xff, 0xff},
		color.RGBA{0xff, 0xff, 0x55, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
	"plan9":   stdpalette.Plan9,
	"websafe": stdpalette.WebSafe,
}

func gray(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range pal {
		v := uint8(i * 0xff / (n - 1))
		pal[i] = color.RGBA{v, v, v, 0xff}
	}
	return pal
}

// Names lists the built-in palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadPalette returns the built-in palette called name, or else reads name as
// a RIFF palette file and concatenates every palette it holds.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return slices.Clone(pal), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette %q holds no colors", name)
	}
	return res, nil
}

// SavePalette writes pal to path as a single-chunk RIFF palette.
func SavePalette(path string, pal color.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", path, closeErr)
		}
	}()

	if _, err = WriteTo(f, []color.Palette{pal}); err != nil {
		return fmt.Errorf("could not save palette %q: %w", path, err)
	}
	return nil
}

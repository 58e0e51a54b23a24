package output

import (
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"
)

// Quantize redraws img with the colours of pal, optionally with
// Floyd-Steinberg error diffusion.
func Quantize(logger *slog.Logger, img image.Image, pal color.Palette, dither bool) *image.Paletted {
	logger.Info("applying palette", "colors", len(pal), "dither", dither)
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}

package output

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img to fit width x height. A zero dimension is derived from
// the other one so the aspect ratio is kept. When both are given and the
// aspect ratios differ, the image is centred and the borders are painted
// with fill, or the destination is shrunk to fit if fill is nil.
func Resize(logger *slog.Logger, img image.Image, width, height int, fill color.Color) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())
	srcAR := srcWidth / srcHeight

	destWidth := float64(width)
	destHeight := float64(height)
	switch {
	case width == 0 && height == 0:
		return img
	case width == 0:
		destWidth = math.Round(destHeight * srcAR)
	case height == 0:
		destHeight = math.Round(destWidth / srcAR)
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img
	}

	destSize := image.Rect(0, 0, int(destWidth), int(destHeight))
	destBounds := destSize

	destAR := destWidth / destHeight
	if srcAR < destAR {
		dw := destHeight * srcAR
		if fill == nil {
			destSize.Max.X = int(math.Round(dw))
			destBounds.Max.X = destSize.Max.X
		} else {
			idw := int(math.Round((destWidth - dw) / 2))
			destBounds.Min.X += idw
			destBounds.Max.X -= idw
		}
	} else if srcAR > destAR {
		dh := destWidth / srcAR
		if fill == nil {
			destSize.Max.Y = int(math.Round(dh))
			destBounds.Max.Y = destSize.Max.Y
		} else {
			idh := int(math.Round((destHeight - dh) / 2))
			destBounds.Min.Y += idh
			destBounds.Max.Y -= idh
		}
	}

	logger.Info("resizing", "width", destBounds.Dx(), "height", destBounds.Dy())
	dest := image.NewRGBA(destSize)
	if fill != nil {
		draw.Draw(dest, destSize, image.NewUniform(fill), destSize.Min, draw.Src)
	}
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Over, nil)

	return dest
}

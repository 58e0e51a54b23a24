package mandel

import (
	"encoding/binary"
	"image"
	"image/color"

	"mandelview/coloring"
)

// Frame is a rendered buffer viewed as an image.Image.
type Frame struct {
	// Pix holds packed 0x00RRGGBB pixels in native byte order. The pixel at
	// (x, y) starts at Pix[y*Stride + x*4].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds, always anchored at (0, 0).
	Rect image.Rectangle
}

func NewFrame(pix []uint8, width, height, stride int) *Frame {
	return &Frame{
		Pix:    pix,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

func (f *Frame) Bounds() image.Rectangle { return f.Rect }

func (f *Frame) At(x, y int) color.Color {
	return f.RGBAAt(x, y)
}

// Packed returns the raw 0x00RRGGBB value at (x, y), or 0 outside the bounds.
func (f *Frame) Packed(x, y int) uint32 {
	if !(image.Point{x, y}.In(f.Rect)) {
		return 0
	}
	i := y*f.Stride + x*BytesPerPixel
	return binary.NativeEndian.Uint32(f.Pix[i : i+BytesPerPixel])
}

func (f *Frame) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(f.Rect)) {
		return color.RGBA{}
	}
	return coloring.Unpack(f.Packed(x, y))
}

// RGBA copies the frame into a standard *image.RGBA, which the stdlib
// encoders handle without going through At.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Rect)
	for y := range f.Rect.Dy() {
		src := f.Pix[y*f.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := range f.Rect.Dx() {
			p := binary.NativeEndian.Uint32(src[x*BytesPerPixel:])
			dst[x*4+0] = uint8(p >> 16)
			dst[x*4+1] = uint8(p >> 8)
			dst[x*4+2] = uint8(p)
			dst[x*4+3] = 0xff
		}
	}
	return img
}

package mandel

import (
	"errors"
	"fmt"
	"math"
)

// ErrStride is returned when no row stride exists for a requested width.
var ErrStride = errors.New("invalid stride")

// BytesPerPixel is the size of one packed 0x00RRGGBB pixel.
const BytesPerPixel = 4

// Format describes how rows of packed pixels are laid out in memory.
// Pixels are 32-bit 0x00RRGGBB words in native byte order, the top byte is
// reserved. Rows start on Align byte boundaries, so the stride may be larger
// than Width*BytesPerPixel; the padding is left zeroed.
type Format struct {
	Align int
}

// RGB24 aligns rows on 32-bit boundaries.
var RGB24 = Format{Align: 4}

// StrideForWidth returns the byte length of one row holding width pixels.
func (f Format) StrideForWidth(width int) (int, error) {
	align := f.Align
	if align < 1 {
		align = 1
	}
	if width <= 0 {
		return 0, fmt.Errorf("%w: width %d", ErrStride, width)
	}
	if width >= (math.MaxInt32-(align-1))/BytesPerPixel {
		return 0, fmt.Errorf("%w: width %d overflows row stride", ErrStride, width)
	}

	stride := width * BytesPerPixel
	return (stride + align - 1) / align * align, nil
}

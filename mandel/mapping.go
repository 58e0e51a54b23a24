package mandel

import (
	"errors"
	"math"
)

// ErrInvalidMapping is returned for a Mapping that fails Valid.
var ErrInvalidMapping = errors.New("invalid mapping")

// Mapping holds everything needed to map a window onto the Mandelbrot plane.
type Mapping struct {
	// CenterX, CenterY is the plane point shown at the centre of the window.
	CenterX, CenterY float64
	// Scale is the plane length covered by one pixel.
	Scale float64
	// IterationDepth caps the escape loop. It is also the largest escape value.
	IterationDepth uint32
	// Width, Height are the window size in pixels.
	Width, Height int
}

// NewMappingForSize returns the initial square view of the whole set.
func NewMappingForSize(size int) Mapping {
	return Mapping{
		Scale:          4.0 / float64(size),
		IterationDepth: 100,
		Width:          size,
		Height:         size,
	}
}

// Valid reports whether m can be rendered. Window sizes must fit in an int32
// so buffer and stride arithmetic stays within image row stride limits.
func (m Mapping) Valid() bool {
	return 0 < m.Width && m.Width <= math.MaxInt32 &&
		0 < m.Height && m.Height <= math.MaxInt32 &&
		m.Scale > 0 && !math.IsInf(m.Scale, 1) &&
		m.IterationDepth > 0
}

// Recenter returns a copy of m centred on the plane point under pixel (px, py).
func (m Mapping) Recenter(px, py float64) Mapping {
	m.CenterX, m.CenterY = NewTransform(m).ToPlane(px, py)
	return m
}

// Resize returns a copy of m for a window of w x h pixels. Centre and scale
// are kept, so the visible region grows or shrinks around the centre.
func (m Mapping) Resize(w, h int) Mapping {
	m.Width, m.Height = w, h
	return m
}

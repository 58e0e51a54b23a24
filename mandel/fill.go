package mandel

import (
	"encoding/binary"

	"mandelview/coloring"
)

// Fill colours rows [rowStart, rowEnd) of the image described by m into dst.
// dst holds exactly those rows: image row dy starts at dst[(dy-rowStart)*stride].
// Only the first m.Width*BytesPerPixel bytes of each row are written.
//
// Fill reports false when dst, stride or the row range cannot hold the
// requested rows. Nothing outside dst[:(rowEnd-rowStart)*stride] is touched,
// which is what lets callers hand disjoint row bands to concurrent workers.
func Fill(dst []byte, stride int, m Mapping, c coloring.Coloring, rowStart, rowEnd int) bool {
	rowBytes := m.Width * BytesPerPixel
	if rowStart < 0 || rowEnd < rowStart || rowEnd > m.Height || stride < rowBytes {
		return false
	}
	if len(dst) < (rowEnd-rowStart)*stride {
		return false
	}

	t := NewTransform(m)
	maxIter := m.IterationDepth
	for dy := rowStart; dy < rowEnd; dy++ {
		y := t.Y(float64(dy))
		off := (dy - rowStart) * stride
		line := dst[off : off+rowBytes]
		for wx := range m.Width {
			x := t.X(float64(wx))
			v := Escape(x, y, maxIter)
			binary.NativeEndian.PutUint32(line[wx*BytesPerPixel:], c.Color(v, maxIter))
		}
	}

	return true
}

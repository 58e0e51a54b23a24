package mandel

// Transform converts window pixel coordinates to plane coordinates:
//
//	x(px) = x0 + f*px
//	y(py) = y0 - f*py
//
// The y axis is flipped because window rows grow downwards. With f the scale
// and (cx, cy) the centre, x(w/2) = cx and y(h/2) = cy give
// x0 = cx - f*w/2 and y0 = cy + f*h/2.
type Transform struct {
	x0, y0, f float64
}

func NewTransform(m Mapping) Transform {
	f := m.Scale
	return Transform{
		x0: m.CenterX - f*float64(m.Width)/2,
		y0: m.CenterY + f*float64(m.Height)/2,
		f:  f,
	}
}

// ToPlane maps pixel (px, py) to the plane.
func (t Transform) ToPlane(px, py float64) (float64, float64) {
	return t.x0 + t.f*px, t.y0 - t.f*py
}

// X maps a pixel column to a plane x coordinate.
func (t Transform) X(px float64) float64 {
	return t.x0 + t.f*px
}

// Y maps a pixel row to a plane y coordinate.
func (t Transform) Y(py float64) float64 {
	return t.y0 - t.f*py
}

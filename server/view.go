package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"mandelview/coloring"
	"mandelview/mandel"
	"mandelview/preset"
	"mandelview/render"
)

// MaxSide is the largest width or height a client may ask for.
const MaxSide = 8192

// View is the complete viewport a client wants to see. Every message
// replaces the previous view entirely.
type View struct {
	ID     string  `json:"id,omitempty"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Zoom   float64 `json:"zoom,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Depth  uint32  `json:"depth"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scheme string  `json:"scheme,omitempty"`
}

// Mapping converts the view to a mapping. An explicit scale wins over zoom
// and the depth is held to the explorer's bounds. The mapping is not
// validated here; invalid views simply produce no frame.
func (v View) Mapping() mandel.Mapping {
	scale := v.Scale
	if scale == 0 {
		scale = preset.ScaleForZoom(v.Zoom, v.Width, v.Height)
	}
	return mandel.Mapping{
		CenterX:        v.CX,
		CenterY:        v.CY,
		Scale:          scale,
		IterationDepth: preset.ClampDepth(v.Depth),
		Width:          v.Width,
		Height:         v.Height,
	}
}

// Request turns the view into a render request, assigning an id if the
// client sent none. An empty scheme selects rgb18. Views wider or taller
// than MaxSide are refused.
func (v View) Request() (render.Request, error) {
	if v.Width > MaxSide || v.Height > MaxSide {
		return render.Request{}, fmt.Errorf("view %dx%d exceeds %dx%d", v.Width, v.Height, MaxSide, MaxSide)
	}

	scheme := coloring.RGB18
	if v.Scheme != "" {
		var err error
		if scheme, err = coloring.ByName(v.Scheme); err != nil {
			return render.Request{}, err
		}
	}

	id := v.ID
	if id == "" {
		id = uuid.NewString()
	}

	return render.Request{
		Mapping:  v.Mapping(),
		Coloring: scheme,
		ID:       id,
	}, nil
}

// viewFromQuery reads a view from URL query parameters with the same names
// as the JSON fields. Missing numbers keep the defaults of the initial view.
func viewFromQuery(q url.Values) (View, error) {
	v := View{
		Depth:  100,
		Width:  preset.DefaultSize,
		Height: preset.DefaultSize,
		Scheme: q.Get("scheme"),
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"cx", &v.CX}, {"cy", &v.CY}, {"zoom", &v.Zoom}, {"scale", &v.Scale},
	}
	for _, f := range floats {
		s := q.Get(f.name)
		if s == "" {
			continue
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return View{}, fmt.Errorf("invalid %s %q: %w", f.name, s, err)
		}
		*f.dst = n
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &v.Width}, {"height", &v.Height},
	}
	for _, f := range ints {
		s := q.Get(f.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return View{}, fmt.Errorf("invalid %s %q: %w", f.name, s, err)
		}
		*f.dst = n
	}

	if s := q.Get("depth"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return View{}, fmt.Errorf("invalid depth %q: %w", s, err)
		}
		v.Depth = uint32(n)
	}

	return v, nil
}

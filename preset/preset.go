// Package preset holds named viewpoints and the zoom scale used to reach them.
package preset

import (
	"fmt"
	"math"

	"mandelview/mandel"
)

const (
	// DefaultSize is the initial window width and height.
	DefaultSize = 600

	// MaxZoom is the deepest zoom step. Zoom 0 shows the whole set.
	MaxZoom = 1000
	// ZoomFactor shrinks the scale by 2% per zoom step.
	ZoomFactor = 0.98

	MinDepth = 10
	MaxDepth = 1000
)

// Preset is a named point of interest.
type Preset struct {
	Name  string
	CX    float64
	CY    float64
	Zoom  float64
	Depth uint32
}

var presets = []Preset{
	{Name: "Initial", CX: 0.0, CY: 0.0, Zoom: 0, Depth: 100},
	{Name: "Flamenco", CX: -1.7665088674631104, CY: 0.04172334239500609, Zoom: 750, Depth: 1000},
	{Name: "Spiral", CX: -0.8099833738092991, CY: 0.17004289101216644, Zoom: 500, Depth: 1000},
}

// All returns the presets in display order.
func All() []Preset {
	return append([]Preset(nil), presets...)
}

// Names returns the preset names in display order.
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// ByName finds a preset by its name.
func ByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset: %q", name)
}

// Mapping returns the view of p for a width x height window.
func (p Preset) Mapping(width, height int) mandel.Mapping {
	return mandel.Mapping{
		CenterX:        p.CX,
		CenterY:        p.CY,
		Scale:          ScaleForZoom(p.Zoom, width, height),
		IterationDepth: p.Depth,
		Width:          width,
		Height:         height,
	}
}

// ScaleForZoom returns the plane length per pixel at the given zoom step. At
// zoom 0 the shorter window side spans 4 units, enough for the whole set.
func ScaleForZoom(zoom float64, width, height int) float64 {
	side := min(width, height)
	if side <= 0 {
		return 0
	}
	return 4.0 / float64(side) * math.Pow(ZoomFactor, zoom)
}

// ClampDepth limits an iteration depth to [MinDepth, MaxDepth].
func ClampDepth(depth uint32) uint32 {
	return min(max(depth, MinDepth), MaxDepth)
}

package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/alecthomas/kong"

	"mandelview/coloring"
	"mandelview/mandel"
	"mandelview/output"
	"mandelview/palette"
	"mandelview/parallel"
	"mandelview/preset"
	"mandelview/render"
)

type renderCmd struct {
	Out string `short:"o" required:"" help:"Destination image file"`

	Preset string  `help:"Start from a named viewpoint (Initial, Flamenco, Spiral). Replaces cx, cy, zoom and depth" group:"view"`
	CX     float64 `name:"cx" help:"Real part of the image centre" group:"view"`
	CY     float64 `name:"cy" help:"Imaginary part of the image centre" group:"view"`
	Zoom   float64 `help:"Zoom step between 0 (whole set) and 1000" default:"0" group:"view"`
	Scale  float64 `help:"Plane units per pixel. Overrides zoom when set" group:"view"`
	Depth  uint32  `help:"Maximum iterations per point, between 10 and 1000" default:"100" group:"view"`
	Width  int     `help:"Image width in pixels" default:"600" group:"view"`
	Height int     `help:"Image height in pixels" default:"600" group:"view"`

	Scheme      string `help:"Colour scheme" enum:"rgb18,rgb3,red-blue16,black-white,old-bw,oklch" default:"rgb18" group:"color"`
	PaletteFile string `help:"Colour with a palette (bw, gray16, vga16, plan9, websafe) or RIFF PAL file instead of a scheme" group:"color"`

	Workers int `help:"Render workers. 0 uses one per CPU" default:"0"`

	Format     string `help:"Output format" enum:"auto,png,gif,jpeg,bmp,tiff" default:"auto" group:"output"`
	Force      bool   `help:"Overwrite an existing destination" default:"false" group:"output"`
	OutWidth   int    `help:"Scale the image to this width before saving" group:"output"`
	OutHeight  int    `help:"Scale the image to this height before saving" group:"output"`
	Fill       string `help:"If both output dimensions are given, pad with this color to keep the aspect ratio" group:"output"`
	GifPalette string `help:"Palette name or RIFF PAL file used when saving GIF" default:"plan9" group:"output"`
	Dither     bool   `help:"Dither when reducing colours for GIF" default:"false" group:"output"`

	Coloring  coloring.Coloring `kong:"-"`
	FillColor color.Color       `kong:"-"`
	GifColors color.Palette     `kong:"-"`
}

func (c *renderCmd) Validate(kctx *kong.Context) error {
	if c.Preset != "" {
		p, err := preset.ByName(c.Preset)
		if err != nil {
			return err
		}
		c.CX, c.CY, c.Zoom, c.Depth = p.CX, p.CY, p.Zoom, p.Depth
	}

	switch {
	case c.Zoom < 0 || c.Zoom > preset.MaxZoom:
		return fmt.Errorf("invalid zoom: %g", c.Zoom)
	case c.Scale < 0:
		return fmt.Errorf("invalid scale: %g", c.Scale)
	case c.Depth < preset.MinDepth || c.Depth > preset.MaxDepth:
		return fmt.Errorf("invalid depth %d, should be between %d and %d", c.Depth, preset.MinDepth, preset.MaxDepth)
	case c.Width <= 0:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.Height <= 0:
		return fmt.Errorf("invalid height: %d", c.Height)
	case c.OutWidth < 0:
		return fmt.Errorf("invalid output width: %d", c.OutWidth)
	case c.OutHeight < 0:
		return fmt.Errorf("invalid output height: %d", c.OutHeight)
	case c.Workers < 0:
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}

	if _, err := output.FormatFor(c.Format, c.Out); err != nil {
		return err
	}

	scheme, err := coloring.ByName(c.Scheme)
	if err != nil {
		return err
	}
	c.Coloring = scheme
	if c.PaletteFile != "" {
		pal, err := palette.LoadPalette(c.PaletteFile)
		if err != nil {
			return err
		}
		c.Coloring = coloring.NewPalette(c.PaletteFile, pal, color.Black)
	}

	if c.Fill != "" {
		if c.FillColor, err = output.ParseHexColor(c.Fill); err != nil {
			return err
		}
	}

	if c.GifColors, err = palette.LoadPalette(c.GifPalette); err != nil {
		return err
	}
	return nil
}

func (c *renderCmd) mapping() mandel.Mapping {
	scale := c.Scale
	if scale == 0 {
		scale = preset.ScaleForZoom(c.Zoom, c.Width, c.Height)
	}
	return mandel.Mapping{
		CenterX:        c.CX,
		CenterY:        c.CY,
		Scale:          scale,
		IterationDepth: c.Depth,
		Width:          c.Width,
		Height:         c.Height,
	}
}

func (c *renderCmd) Run(logger *slog.Logger) error {
	pool := parallel.Start(c.Workers)
	defer pool.Close()

	m := c.mapping()
	logger = logger.With("cx", m.CenterX, "cy", m.CenterY, "scale", m.Scale,
		"depth", m.IterationDepth, "coloring", c.Coloring.Name())
	logger.Info("rendering", "width", m.Width, "height", m.Height, "workers", pool.Workers())

	builder := render.NewBuilder(pool, mandel.RGB24)
	reply, err := builder.Build(m, c.Coloring)
	if err != nil {
		return err
	}

	var img image.Image = reply.Image().RGBA()
	if c.OutWidth > 0 || c.OutHeight > 0 {
		img = output.Resize(logger, img, c.OutWidth, c.OutHeight, c.FillColor)
	}

	format, err := output.FormatFor(c.Format, c.Out)
	if err != nil {
		return err
	}
	if format == "gif" {
		img = output.Quantize(logger.With("palette", c.GifPalette), img, c.GifColors, c.Dither)
	}

	if err := output.Save(img, format, c.Out, c.Force); err != nil {
		return err
	}
	logger.Info("saved", "file", c.Out, "format", format)
	return nil
}

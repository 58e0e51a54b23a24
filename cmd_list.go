package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"mandelview/coloring"
	"mandelview/palette"
	"mandelview/preset"
)

type schemesCmd struct{}

func (c *schemesCmd) Run() error {
	for i, name := range coloring.Names() {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", i, name)
	}
	return nil
}

type presetsCmd struct{}

func (c *presetsCmd) Run() error {
	for _, p := range preset.All() {
		fmt.Fprintf(os.Stdout, "%s\tcx=%v\tcy=%v\tzoom=%v\tdepth=%d\n", p.Name, p.CX, p.CY, p.Zoom, p.Depth)
	}
	return nil
}

type paletteCmd struct {
	Scheme string `arg:"" help:"Scheme to export" enum:"rgb18,rgb3,red-blue16,black-white,old-bw,oklch"`
	Out    string `arg:"" help:"Destination PAL file"`

	Colors coloring.Scheme `kong:"-"`
}

func (c *paletteCmd) Validate(kctx *kong.Context) error {
	var err error
	c.Colors, err = coloring.ByName(c.Scheme)
	return err
}

func (c *paletteCmd) Run(logger *slog.Logger) error {
	pal := c.Colors.Cycle()
	if err := palette.SavePalette(c.Out, pal); err != nil {
		return err
	}
	logger.Info("exported palette", "scheme", c.Scheme, "colors", len(pal), "file", c.Out)
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel string `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info"`

	Render  renderCmd  `cmd:"" help:"Render a view of the Mandelbrot set to an image file"`
	Serve   serveCmd   `cmd:"" help:"Serve the interactive explorer and single-image renders over HTTP"`
	Schemes schemesCmd `cmd:"" help:"List the built-in colour schemes"`
	Presets presetsCmd `cmd:"" help:"List the named viewpoints"`
	Palette paletteCmd `cmd:"" help:"Export the colours of a scheme as a RIFF palette file"`
}

func (c *cli) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mandelview"),
		kong.Description("Escape-time Mandelbrot renderer."),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.level()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(logger)
	stop()

	if err != nil {
		logger.Error(fmt.Sprintf("%s failed", kctx.Command()), "error", err)
		os.Exit(1)
	}
}

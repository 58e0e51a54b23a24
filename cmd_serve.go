package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	"mandelview/mandel"
	"mandelview/metrics"
	"mandelview/parallel"
	"mandelview/render"
	"mandelview/server"
)

type serveCmd struct {
	Addr              string        `help:"Listen address" default:":8080"`
	Workers           int           `help:"Render workers shared by every session. 0 uses one per CPU" default:"0"`
	ReadHeaderTimeout time.Duration `help:"Time allowed to read request headers" default:"5s"`
	Origins           []string      `help:"Host patterns allowed to open the websocket from another origin"`
}

func (c *serveCmd) Validate(kctx *kong.Context) error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("invalid read header timeout: %s", c.ReadHeaderTimeout)
	}
	return nil
}

func (c *serveCmd) Run(ctx context.Context, logger *slog.Logger) error {
	metrics.Register()

	pool := parallel.Start(c.Workers)
	defer pool.Close()

	srv := server.New(render.NewBuilder(pool, mandel.RGB24),
		server.WithLogger(logger),
		server.WithOriginPatterns(c.Origins...),
		server.WithReadHeaderTimeout(c.ReadHeaderTimeout),
	)
	logger.Info("starting server", "workers", pool.Workers())
	return srv.ListenAndServe(ctx, c.Addr)
}

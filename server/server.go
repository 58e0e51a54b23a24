// Package server exposes the renderer over HTTP. Interactive clients stream
// views over a websocket and get PNG frames back; one-off renders are served
// as plain PNG downloads.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"mandelview/coloring"
	"mandelview/metrics"
	"mandelview/output"
	"mandelview/render"
)

const (
	// DefaultReadHeaderTimeout bounds how long a client may take to send
	// request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// queueDepth is the number of views a session buffers while its
	// producer is busy. Older views are evicted when it overflows.
	queueDepth = 4

	// maxViewBytes caps a single inbound view message.
	maxViewBytes = 4096
)

// Server serves renders built by a shared Builder.
type Server struct {
	builder           *render.Builder
	logger            *slog.Logger
	origins           []string
	readHeaderTimeout time.Duration
	sessions          sync.WaitGroup
}

type Option func(*Server)

// WithLogger sets the logger for connection and render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOriginPatterns lists the hosts allowed to open a websocket from a
// browser page served elsewhere.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.origins = patterns
	}
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readHeaderTimeout = d
	}
}

func New(builder *render.Builder, opts ...Option) *Server {
	s := &Server{
		builder:           builder,
		logger:            slog.Default(),
		readHeaderTimeout: DefaultReadHeaderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleExplorer)
	mux.HandleFunc("GET /render.png", s.handleRender)
	mux.HandleFunc("GET /schemes", s.handleSchemes)
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("could not serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.Wait()
	return nil
}

// Wait blocks until every explorer session has ended. Shutdown does not
// track websocket connections, so callers wait here before releasing the
// builder's pool.
func (s *Server) Wait() {
	s.sessions.Wait()
}

// handleExplorer runs one interactive session. Inbound views feed a private
// producer; its replies are PNG-encoded and written as binary messages.
// Views that fail to parse get a JSON error message back and are otherwise
// ignored.
func (s *Server) handleExplorer(w http.ResponseWriter, r *http.Request) {
	s.sessions.Add(1)
	defer s.sessions.Done()

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		s.logger.Warn("could not accept websocket", "error", err)
		return
	}
	defer c.CloseNow()
	c.SetReadLimit(maxViewBytes)

	logger := s.logger.With("session", uuid.NewString())
	logger.Info("session opened", "remote", r.RemoteAddr)
	metrics.SessionOpened()
	defer metrics.SessionClosed()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	requests := make(chan render.Request, queueDepth)
	replies := make(chan render.Reply, 1)
	producer := render.NewProducer(s.builder, render.WithLogger(logger))

	var wg sync.WaitGroup
	wg.Go(func() {
		producer.Run(ctx, requests, replies)
	})
	wg.Go(func() {
		defer cancel()
		if err := writeFrames(ctx, c, replies); err != nil && ctx.Err() == nil {
			logger.Warn("could not write frame", "error", err)
		}
	})

	err = readViews(ctx, c, requests)
	close(requests)
	cancel()
	wg.Wait()

	switch status := websocket.CloseStatus(err); {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		logger.Info("session closed")
	case errors.Is(err, context.Canceled):
		logger.Info("session ended")
	default:
		logger.Warn("session failed", "error", err)
	}
}

type errorMessage struct {
	Error string `json:"error"`
}

// readViews forwards every view read from c until the connection fails.
func readViews(ctx context.Context, c *websocket.Conn, requests chan render.Request) error {
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			return err
		}

		var view View
		if err := json.Unmarshal(data, &view); err != nil {
			if err := reject(ctx, c, fmt.Errorf("invalid view: %w", err)); err != nil {
				return err
			}
			continue
		}

		req, err := view.Request()
		if err != nil {
			if err := reject(ctx, c, err); err != nil {
				return err
			}
			continue
		}
		render.Offer(requests, req)
	}
}

func reject(ctx context.Context, c *websocket.Conn, err error) error {
	return wsjson.Write(ctx, c, errorMessage{Error: err.Error()})
}

// writeFrames sends each reply as a PNG until ctx is done.
func writeFrames(ctx context.Context, c *websocket.Conn, replies <-chan render.Reply) error {
	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reply := <-replies:
			buf.Reset()
			if err := output.Encode(&buf, reply.Image().RGBA(), "png"); err != nil {
				return err
			}
			if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
				return err
			}
		}
	}
}

// handleRender renders the view given in the query string synchronously.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	view, err := viewFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, err := view.Request()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	reply, err := s.builder.Build(req.Mapping, req.Coloring)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordRender(render.Outcome(err), elapsed)
		s.logger.Debug("could not render", "request", req.ID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.RecordRender(metrics.ResultOK, elapsed)

	var buf bytes.Buffer
	if err := output.Encode(&buf, reply.Image().RGBA(), "png"); err != nil {
		s.logger.Error("could not encode frame", "request", req.ID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

type schemeInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	names := coloring.Names()
	schemes := make([]schemeInfo, len(names))
	for i, name := range names {
		schemes[i] = schemeInfo{Index: i, Name: name}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(schemes); err != nil {
		s.logger.Warn("could not write schemes", "error", err)
	}
}

package render

import (
	"context"
	"log/slog"
	"time"

	"mandelview/metrics"
)

// Producer turns a stream of requests into renders of the newest one. It
// holds at most one request: whatever queued up while it was busy is
// collapsed to the last entry before the next render starts.
type Producer struct {
	builder *Builder
	logger  *slog.Logger
}

type ProducerOption func(*Producer)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) ProducerOption {
	return func(p *Producer) {
		p.logger = logger
	}
}

func NewProducer(builder *Builder, opts ...ProducerOption) *Producer {
	p := &Producer{
		builder: builder,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loops until requests is closed or ctx is done. Each iteration waits
// for a request, skips to the newest one already queued, renders it on the
// calling goroutine and offers exactly one reply for it. A reply that does
// not fit in replies is dropped. Requests that fail to render get no reply.
func (p *Producer) Run(ctx context.Context, requests <-chan Request, replies chan<- Reply) {
	for {
		var req Request
		select {
		case <-ctx.Done():
			return
		case r, ok := <-requests:
			if !ok {
				return
			}
			req = r
		}
		metrics.RecordRequestReceived()

		req, open := latest(req, requests)

		reply, ok := p.render(req)
		if ctx.Err() != nil {
			return
		}
		if ok {
			select {
			case replies <- reply:
			default:
				metrics.RecordReplyDropped()
				p.logger.Warn("dropping reply, consumer is behind", "request", req.ID)
			}
		}

		if !open {
			return
		}
	}
}

// latest drains requests without blocking and returns the last request
// seen, and whether requests is still open.
func latest(req Request, requests <-chan Request) (Request, bool) {
	skipped := 0
	defer func() {
		if skipped > 0 {
			metrics.RecordRequestsCoalesced(skipped)
		}
	}()

	for {
		select {
		case next, ok := <-requests:
			if !ok {
				return req, false
			}
			req = next
			skipped++
		default:
			return req, true
		}
	}
}

func (p *Producer) render(req Request) (Reply, bool) {
	logger := p.logger.With("request", req.ID)

	start := time.Now()
	reply, err := p.builder.Build(req.Mapping, req.Coloring)
	elapsed := time.Since(start)

	result := Outcome(err)
	metrics.RecordRender(result, elapsed)

	switch result {
	case metrics.ResultOK:
		logger.Debug("rendered", "width", reply.Width, "height", reply.Height,
			"depth", req.Mapping.IterationDepth, "elapsed", elapsed)
		reply.ID = req.ID
		return reply, true
	case metrics.ResultInvalidMapping:
		logger.Debug("skipping invalid mapping", "error", err)
	case metrics.ResultStride:
		logger.Warn("skipping render without stride", "error", err)
	case metrics.ResultTooLarge:
		logger.Warn("skipping oversized render", "error", err)
	default:
		logger.Error("render failed", "error", err)
	}
	return Reply{}, false
}

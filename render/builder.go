package render

import (
	"errors"
	"fmt"

	"mandelview/coloring"
	"mandelview/mandel"
	"mandelview/metrics"
	"mandelview/parallel"
)

// ErrPartialFill means a band could not be filled. It indicates a
// partitioning bug; the whole render is discarded.
var ErrPartialFill = errors.New("partial fill")

// ErrTooLarge means the pixel buffer for a mapping would exceed the
// builder's byte limit.
var ErrTooLarge = errors.New("image too large")

// DefaultMaxBytes caps the pixel buffer of a single render at 1 GiB.
const DefaultMaxBytes = 1 << 30

// Outcome classifies a Build error as a metrics result label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, mandel.ErrInvalidMapping):
		return metrics.ResultInvalidMapping
	case errors.Is(err, mandel.ErrStride):
		return metrics.ResultStride
	case errors.Is(err, ErrTooLarge):
		return metrics.ResultTooLarge
	default:
		return metrics.ResultPartialFill
	}
}

// Builder fills whole images, one row band per pool worker.
type Builder struct {
	pool     *parallel.Pool
	format   mandel.Format
	maxBytes int
}

type BuilderOption func(*Builder)

// WithMaxBytes sets the largest pixel buffer Build allocates.
func WithMaxBytes(n int) BuilderOption {
	return func(b *Builder) {
		b.maxBytes = n
	}
}

func NewBuilder(pool *parallel.Pool, format mandel.Format, opts ...BuilderOption) *Builder {
	b := &Builder{
		pool:     pool,
		format:   format,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Workers returns the number of bands a large image is split into.
func (b *Builder) Workers() int {
	return b.pool.Workers()
}

// Build validates m, allocates a zeroed buffer in the builder's format and
// fills it. Errors wrap mandel.ErrInvalidMapping, mandel.ErrStride,
// ErrTooLarge or ErrPartialFill; no buffer is returned with an error.
func (b *Builder) Build(m mandel.Mapping, c coloring.Coloring) (Reply, error) {
	if !m.Valid() {
		return Reply{}, fmt.Errorf("could not render %+v: %w", m, mandel.ErrInvalidMapping)
	}

	stride, err := b.format.StrideForWidth(m.Width)
	if err != nil {
		return Reply{}, fmt.Errorf("could not render %dx%d: %w", m.Width, m.Height, err)
	}

	if m.Height > b.maxBytes/stride {
		return Reply{}, fmt.Errorf("could not render %dx%d: %w: more than %d bytes",
			m.Width, m.Height, ErrTooLarge, b.maxBytes)
	}

	buf := make([]byte, m.Height*stride)
	if !b.FillInto(buf, stride, m, c) {
		return Reply{}, fmt.Errorf("could not render %dx%d: %w", m.Width, m.Height, ErrPartialFill)
	}

	return Reply{
		Pixels: buf,
		Width:  int32(m.Width),
		Height: int32(m.Height),
		Stride: int32(stride),
	}, nil
}

// FillInto fills buf, which must hold m.Height rows of stride bytes. Images
// with fewer rows than workers are filled on the calling goroutine. Larger
// ones are split with ComputeSplits and each band gets a sub-slice whose
// capacity ends at the band's last byte, so no worker can reach another
// band's rows. The result is byte-identical for any number of workers.
func (b *Builder) FillInto(buf []byte, stride int, m mandel.Mapping, c coloring.Coloring) bool {
	workers := b.pool.Workers()
	if m.Height < workers || workers == 1 {
		return mandel.Fill(buf, stride, m, c, 0, m.Height)
	}
	if len(buf) < m.Height*stride {
		return false
	}

	splits := ComputeSplits(m.Height, workers)
	tasks := make([]func() bool, len(splits))
	for i, start := range splits {
		end := bandEnd(splits, i, m.Height)
		band := buf[start*stride : end*stride : end*stride]
		tasks[i] = func() bool {
			return mandel.Fill(band, stride, m, c, start, end)
		}
	}

	return b.pool.Run(tasks...)
}

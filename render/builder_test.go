package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandelview/coloring"
	"mandelview/mandel"
	"mandelview/parallel"
)

func newTestBuilder(t *testing.T, workers int, format mandel.Format) *Builder {
	t.Helper()
	pool := parallel.Start(workers)
	t.Cleanup(pool.Close)
	return NewBuilder(pool, format)
}

func TestBuildIsIndependentOfWorkers(t *testing.T) {
	m := mandel.Mapping{CenterX: -0.75, CenterY: 0.1, Scale: 3.0 / 97, IterationDepth: 200, Width: 101, Height: 97}
	format := mandel.Format{Align: 64}

	want, err := newTestBuilder(t, 1, format).Build(m, coloring.RGB18)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 200} {
		got, err := newTestBuilder(t, workers, format).Build(m, coloring.RGB18)
		require.NoError(t, err)
		assert.Equalf(t, want.Stride, got.Stride, "workers=%d", workers)
		assert.Truef(t, bytes.Equal(want.Pixels, got.Pixels), "workers=%d produced different pixels", workers)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	b := newTestBuilder(t, 4, mandel.RGB24)
	m := mandel.NewMappingForSize(64)

	first, err := b.Build(m, coloring.OkLCh)
	require.NoError(t, err)
	second, err := b.Build(m, coloring.OkLCh)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first.Pixels, second.Pixels))
}

func TestBuildReply(t *testing.T) {
	b := newTestBuilder(t, 8, mandel.RGB24)
	reply, err := b.Build(mandel.NewMappingForSize(600), coloring.BlackWhite)
	require.NoError(t, err)

	assert.Equal(t, int32(600), reply.Width)
	assert.Equal(t, int32(600), reply.Height)
	assert.Equal(t, int32(2400), reply.Stride)
	assert.Len(t, reply.Pixels, 600*2400)
	assert.Equal(t, uint32(0x808080), reply.Image().Packed(300, 300))
}

func TestBuildErrors(t *testing.T) {
	b := newTestBuilder(t, 2, mandel.RGB24)

	_, err := b.Build(mandel.Mapping{Scale: 1, IterationDepth: 10, Width: 0, Height: 10}, coloring.RGB18)
	assert.ErrorIs(t, err, mandel.ErrInvalidMapping)
	assert.Equal(t, "invalid_mapping", Outcome(err))

	_, err = b.Build(mandel.Mapping{Scale: 1, IterationDepth: 10, Width: 1 << 30, Height: 1}, coloring.RGB18)
	assert.ErrorIs(t, err, mandel.ErrStride)
	assert.Equal(t, "stride", Outcome(err))

	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "too_large", Outcome(ErrTooLarge))
	assert.Equal(t, "partial_fill", Outcome(ErrPartialFill))
}

func TestFillIntoSmallImage(t *testing.T) {
	b := newTestBuilder(t, 8, mandel.RGB24)
	m := mandel.Mapping{Scale: 0.5, IterationDepth: 20, Width: 5, Height: 3}

	buf := make([]byte, 3*20)
	require.True(t, b.FillInto(buf, 20, m, coloring.RGB3))

	want := make([]byte, 3*20)
	require.True(t, mandel.Fill(want, 20, m, coloring.RGB3, 0, 3))
	assert.Equal(t, want, buf)

	assert.False(t, b.FillInto(buf[:10], 20, m.Resize(5, 16), coloring.RGB3))
}

func TestBuildRefusesOversizedBuffers(t *testing.T) {
	b := newTestBuilder(t, 2, mandel.RGB24)

	huge := mandel.Mapping{Scale: 1e-9, IterationDepth: 10, Width: 5e8, Height: 5e8}
	require.True(t, huge.Valid())

	var err error
	require.NotPanics(t, func() {
		_, err = b.Build(huge, coloring.RGB18)
	})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = b.Build(mandel.Mapping{Scale: 1e-6, IterationDepth: 10, Width: 50000, Height: 50000}, coloring.RGB18)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestBuildWithMaxBytes(t *testing.T) {
	pool := parallel.Start(2)
	t.Cleanup(pool.Close)
	b := NewBuilder(pool, mandel.RGB24, WithMaxBytes(16*16*4))

	_, err := b.Build(mandel.NewMappingForSize(16), coloring.RGB18)
	require.NoError(t, err)

	_, err = b.Build(mandel.NewMappingForSize(17), coloring.RGB18)
	assert.ErrorIs(t, err, ErrTooLarge)
}

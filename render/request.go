package render

import (
	"mandelview/coloring"
	"mandelview/mandel"
	"mandelview/metrics"
)

// Request is everything needed for one render.
type Request struct {
	Mapping  mandel.Mapping
	Coloring coloring.Coloring
	// ID only correlates log lines; it plays no part in rendering.
	ID string
}

// Reply carries a finished render. Stride is the byte length of one row and
// may exceed Width*4; the extra bytes are zero.
type Reply struct {
	Pixels        []byte
	Width, Height int32
	Stride        int32
	ID            string
}

// Image views the reply's buffer as an image.
func (r Reply) Image() *mandel.Frame {
	return mandel.NewFrame(r.Pixels, int(r.Width), int(r.Height), int(r.Stride))
}

// Offer queues req without blocking. When requests is full the oldest queued
// request is thrown away to make room, so the newest request always lands.
// Offer reports false only if requests has no buffer at all and nobody is
// receiving.
func Offer(requests chan Request, req Request) bool {
	for range cap(requests) + 1 {
		select {
		case requests <- req:
			return true
		default:
		}

		select {
		case <-requests:
			metrics.RecordRequestEvicted()
		default:
		}
	}
	return false
}

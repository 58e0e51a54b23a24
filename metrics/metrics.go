// Package metrics exposes Prometheus collectors for the render pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mandelview"

// Render outcomes used as the "result" label.
const (
	ResultOK             = "ok"
	ResultInvalidMapping = "invalid_mapping"
	ResultStride         = "stride"
	ResultPartialFill    = "partial_fill"
	ResultTooLarge       = "too_large"
)

// Registry holds every collector of this package plus the Go runtime ones.
var Registry = prometheus.NewRegistry()

var (
	requestsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_received_total",
			Help:      "Count of render requests taken off the request channel.",
		},
	)
	requestsCoalesced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_coalesced_total",
			Help:      "Count of render requests discarded because a newer one was queued behind them.",
		},
	)
	requestsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_evicted_total",
			Help:      "Count of queued render requests evicted by the sender to make room for a newer one.",
		},
	)
	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Count of renders attempted, by result.",
		},
		[]string{"result"},
	)
	renderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Wall time of successful renders.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
	repliesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_dropped_total",
			Help:      "Count of finished renders dropped because the reply channel was full.",
		},
	)
	explorerSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "explorer_sessions",
			Help:      "Number of open websocket explorer sessions.",
		},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(requestsReceived)
		Registry.MustRegister(requestsCoalesced)
		Registry.MustRegister(requestsEvicted)
		Registry.MustRegister(renders)
		Registry.MustRegister(renderDuration)
		Registry.MustRegister(repliesDropped)
		Registry.MustRegister(explorerSessions)
		Registry.MustRegister(collectors.NewGoCollector())
	})
}

// Handler serves the metrics in Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// RecordRequestReceived counts a request taken off the request channel.
func RecordRequestReceived() {
	requestsReceived.Inc()
}

// RecordRequestsCoalesced counts n requests superseded before rendering.
func RecordRequestsCoalesced(n int) {
	requestsCoalesced.Add(float64(n))
}

// RecordRequestEvicted counts a queued request dropped by its sender.
func RecordRequestEvicted() {
	requestsEvicted.Inc()
}

// RecordRender counts a render with the given result and, for successful
// ones, observes its duration.
func RecordRender(result string, d time.Duration) {
	renders.WithLabelValues(result).Inc()
	if result == ResultOK {
		renderDuration.Observe(d.Seconds())
	}
}

// RecordReplyDropped counts a finished render that could not be delivered.
func RecordReplyDropped() {
	repliesDropped.Inc()
}

// SessionOpened and SessionClosed track open explorer sessions.
func SessionOpened() { explorerSessions.Inc() }

func SessionClosed() { explorerSessions.Dec() }

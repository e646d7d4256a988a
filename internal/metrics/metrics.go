package metrics

import (
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docsearch"

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Collector owns a private registry so tests and binaries never share global state
type Collector struct {
	registry       *prometheus.Registry
	upstreamErrors *prometheus.CounterVec
	engineLatency  *prometheus.HistogramVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Search engine failures by operation and kind.",
		}, []string{"op", "kind"}),
		engineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Latency of search engine calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"}),
	}

	reg.MustRegister(
		c.upstreamErrors,
		c.engineLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveUpstream counts an engine failure; it matches apperr.UpstreamObserver
func (c *Collector) ObserveUpstream(err *apperr.UpstreamError) {
	if err == nil {
		return
	}
	c.upstreamErrors.WithLabelValues(err.Op, string(err.Kind)).Inc()
}

func (c *Collector) observeLatency(op string, start time.Time, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	c.engineLatency.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

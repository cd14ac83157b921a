package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ardnew/doji/pkg"
)

// Metrics contains Prometheus collectors for allocation traffic.
type Metrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	inUse    prometheus.Gauge
}

// NewMetrics creates and registers allocation collectors with reg.
// A nil reg registers with [prometheus.DefaultRegisterer].
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: pkg.Name + "_alloc_requests_total",
				Help: "Total number of allocation requests",
			},
			[]string{"op"},
		),

		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: pkg.Name + "_alloc_failures_total",
				Help: "Total number of allocation requests refused by the provider",
			},
			[]string{"op"},
		),

		bytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: pkg.Name + "_alloc_bytes_total",
				Help: "Total number of bytes admitted or released",
			},
			[]string{"op"},
		),

		inUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: pkg.Name + "_alloc_bytes_in_use",
				Help: "Current number of outstanding bytes",
			},
		),
	}
}

// Instrument returns a [Provider] that forwards to p and records every
// request in m.
func (m *Metrics) Instrument(p Provider) Provider {
	return &instrumented{Provider: p, metrics: m}
}

type instrumented struct {
	Provider

	metrics *Metrics
}

func (i *instrumented) Alloc(size int) bool {
	ok := i.Provider.Alloc(size)
	i.record("alloc", ok, size)

	return ok
}

func (i *instrumented) Realloc(oldSize, newSize int) bool {
	ok := i.Provider.Realloc(oldSize, newSize)
	i.record("realloc", ok, newSize-oldSize)

	return ok
}

func (i *instrumented) Free(size int) {
	i.Provider.Free(size)
	i.metrics.requests.WithLabelValues("free").Inc()
	i.metrics.bytes.WithLabelValues("free").Add(float64(size))
	i.metrics.inUse.Sub(float64(size))
}

func (i *instrumented) record(op string, ok bool, delta int) {
	i.metrics.requests.WithLabelValues(op).Inc()

	if !ok {
		i.metrics.failures.WithLabelValues(op).Inc()

		return
	}

	if delta > 0 {
		i.metrics.bytes.WithLabelValues(op).Add(float64(delta))
	}

	i.metrics.inUse.Add(float64(delta))
}

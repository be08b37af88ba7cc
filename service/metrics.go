package service

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "myregistry"

// Metrics holds the registry collectors. Each Metrics owns its prometheus.Registry,
// so several instances (tests, multiple nodes in one process) never collide.
type Metrics struct {
	registry *prometheus.Registry

	Registrations   prometheus.Counter
	Renewals        *prometheus.CounterVec
	Cancellations   prometheus.Counter
	Evictions       prometheus.Counter
	SuppressedEvict prometheus.Counter
	Replicated      *prometheus.CounterVec
	ReplicaApplied  prometheus.Counter
	MirrorDropped   prometheus.Counter
	Requests        *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
}

// NewMetrics creates and registers the registry collectors together with the Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "lease", Name: "registrations_total",
			Help: "Registrations applied, including re-registrations.",
		}),
		Renewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "lease", Name: "renewals_total",
			Help: "Heartbeats by result.",
		}, []string{"result"}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "lease", Name: "cancellations_total",
			Help: "Explicit deregistrations that removed a lease.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "sweeper", Name: "evictions_total",
			Help: "Leases removed by the sweeper.",
		}),
		SuppressedEvict: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "sweeper", Name: "suppressed_evictions_total",
			Help: "Expired leases kept because of self-preservation.",
		}),
		Replicated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "replication", Name: "pushes_total",
			Help: "Pushes to peers by kind and result.",
		}, []string{"peer", "kind", "result"}),
		ReplicaApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "replication", Name: "applied_total",
			Help: "Deltas and leases received from peers that changed local state.",
		}),
		MirrorDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "mirror", Name: "dropped_total",
			Help: "Deltas dropped because the mirror queue was full.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "code"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Registrations,
		m.Renewals,
		m.Cancellations,
		m.Evictions,
		m.SuppressedEvict,
		m.Replicated,
		m.ReplicaApplied,
		m.MirrorDropped,
		m.Requests,
		m.RequestLatency,
	)
	return m
}

// ObserveSize exposes the current number of leases as a gauge.
func (m *Metrics) ObserveSize(size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace, Subsystem: "lease", Name: "instances",
		Help: "Registered instances.",
	}, func() float64 { return float64(size()) }))
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package metrics exposes Prometheus instrumentation for enumeration passes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the collectors for one enumeration table.
// Each Recorder owns its registry so several tables can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	discovered   *prometheus.CounterVec
	expansions   *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	tableSize    *prometheus.GaugeVec
	translations *prometheus.CounterVec
}

// NewRecorder creates and registers the tabula collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		discovered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_states_discovered_total",
				Help: "Total number of states assigned an enumeration id",
			},
			[]string{"domain"},
		),
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_state_expansions_total",
				Help: "Total number of states expanded during reachability passes",
			},
			[]string{"domain"},
		),
		passDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tabula_pass_duration_seconds",
				Help:    "Duration of reachability passes",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		tableSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tabula_table_size",
				Help: "Number of states currently enumerated",
			},
			[]string{"domain"},
		),
		translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabula_action_calls_total",
				Help: "Wrapped action calls routed through the tabulated domain",
			},
			[]string{"domain", "action", "op", "outcome"},
		),
	}
	r.registry.MustRegister(r.discovered, r.expansions, r.passDuration, r.tableSize, r.translations)
	return r
}

// Discovered records a newly enumerated state.
func (r *Recorder) Discovered(domain string) {
	r.discovered.WithLabelValues(domain).Inc()
}

// Expanded records a state expansion.
func (r *Recorder) Expanded(domain string) {
	r.expansions.WithLabelValues(domain).Inc()
}

// PassComplete records the duration of a pass and the resulting table size.
func (r *Recorder) PassComplete(domain string, d time.Duration, size int) {
	r.passDuration.WithLabelValues(domain).Observe(d.Seconds())
	r.tableSize.WithLabelValues(domain).Set(float64(size))
}

// ActionCall records a wrapped action invocation. outcome is "ok" or "error".
func (r *Recorder) ActionCall(domain, action, op, outcome string) {
	r.translations.WithLabelValues(domain, action, op, outcome).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

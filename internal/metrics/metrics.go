// Package metrics exposes the dedicated Prometheus registry for the
// dispatch service (SPEC_FULL.md §4.9), grounded on
// joshuarotgers-USPS_Main/internal/metrics/metrics.go: a package-level
// registry plus a handful of CounterVec/HistogramVec metrics and a
// RegisterDefault that wires the Go/process collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry for the dispatch service's
	// /metrics endpoint, kept separate from prometheus.DefaultRegisterer
	// so third-party imports can't silently pollute it.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "dispatch_http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SortiesEmitted counts accepted sorties across all planning calls.
	SortiesEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dispatch_sorties_emitted_total", Help: "Sorties accepted by the planning loop."},
	)

	// DeliveriesUnserved counts dispatch records still remaining once the
	// planning loop terminates because no drone could extend the result.
	DeliveriesUnserved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dispatch_deliveries_unserved_total", Help: "Dispatch records left unserved when planning terminates."},
	)

	// PathfinderExpansions counts nodes popped off the A* open set across
	// every leg the dispatch driver builds.
	PathfinderExpansions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dispatch_pathfinder_expansions_total", Help: "A* node expansions across all planned legs."},
	)
)

var once sync.Once

// RegisterDefault registers every metric on Registry exactly once.
func RegisterDefault() {
	once.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SortiesEmitted)
		Registry.MustRegister(DeliveriesUnserved)
		Registry.MustRegister(PathfinderExpansions)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

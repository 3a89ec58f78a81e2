// Package metrics registers the app's Prometheus collectors. Labels are kept
// to small fixed sets (operation names, export formats, route paths) so
// cardinality stays bounded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// StoreMutations counts store mutations by operation (add, edit,
	// delete, take).
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medtimer_store_mutations_total",
			Help: "Total number of medicine store mutations.",
		},
		[]string{"op"},
	)

	// SaveFailures counts persistence writes that failed. The store keeps
	// running after a failed save, so this is the only place the failure
	// stays visible.
	SaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medtimer_save_failures_total",
			Help: "Total number of failed data file writes.",
		},
	)

	// Exports counts schedule exports by format (csv, pdf).
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medtimer_exports_total",
			Help: "Total number of schedule exports.",
		},
		[]string{"format"},
	)

	// HTTPRequests counts API requests by method, registered route, and
	// status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medtimer_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(StoreMutations, SaveFailures, Exports, HTTPRequests)
}

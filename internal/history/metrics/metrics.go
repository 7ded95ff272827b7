// Package metrics holds the Prometheus metrics for the history service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all counters the dispatcher emits.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RecordsWritten  prometheus.Counter
	RecordsReturned prometheus.Counter
	SearchTimeouts  prometheus.Counter
}

// New creates and registers the history metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer; tests pass a
// throwaway registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chronicle_requests_total",
			Help: "History requests by operation and response status.",
		}, []string{"operation", "status"}),
		RecordsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "chronicle_records_written_total",
			Help: "Records appended to the log store.",
		}),
		RecordsReturned: factory.NewCounter(prometheus.CounterOpts{
			Name: "chronicle_records_returned_total",
			Help: "Records returned by read operations.",
		}),
		SearchTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "chronicle_search_timeouts_total",
			Help: "Searches abandoned because the poll deadline passed.",
		}),
	}
}

// ObserveRequest records one dispatched request outcome.
func (m *Metrics) ObserveRequest(operation string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// AddRecordsReturned adds to the read-result counter.
func (m *Metrics) AddRecordsReturned(n int) {
	if m == nil {
		return
	}
	m.RecordsReturned.Add(float64(n))
}

// IncRecordsWritten bumps the write counter.
func (m *Metrics) IncRecordsWritten() {
	if m == nil {
		return
	}
	m.RecordsWritten.Inc()
}

// IncSearchTimeouts bumps the timeout counter.
func (m *Metrics) IncSearchTimeouts() {
	if m == nil {
		return
	}
	m.SearchTimeouts.Inc()
}

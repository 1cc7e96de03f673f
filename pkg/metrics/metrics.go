// Package metrics provides Prometheus instrumentation for the dashboard
// query API and the snapshot exporter.
//
// Metrics exposed:
//   - costguardian_query_requests_total: Counter of view queries by view and status code
//   - costguardian_query_store_errors_total: Counter of record store failures swallowed by queries
//   - costguardian_export_runs_total: Counter of exporter runs by result
//   - costguardian_export_duration_seconds: Histogram of exporter run durations
//   - costguardian_snapshot_resources: Gauge of unique resources in the last published snapshot
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	QueryRequestsTotal *prometheus.CounterVec
	QueryStoreErrors   prometheus.Counter
	ExportRunsTotal    *prometheus.CounterVec
	ExportDuration     prometheus.Histogram
	SnapshotResources  prometheus.Gauge
}

// New registers the collectors with reg (prometheus.DefaultRegisterer in
// the binaries, a fresh registry in tests).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QueryRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "costguardian_query_requests_total",
			Help: "Total number of dashboard view queries by view and status code",
		}, []string{"view", "status"}),

		QueryStoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "costguardian_query_store_errors_total",
			Help: "Total number of record store failures treated as empty results",
		}),

		ExportRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "costguardian_export_runs_total",
			Help: "Total number of snapshot exporter runs by result",
		}, []string{"result"}),

		ExportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "costguardian_export_duration_seconds",
			Help:    "Duration of snapshot exporter runs",
			Buckets: prometheus.DefBuckets,
		}),

		SnapshotResources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "costguardian_snapshot_resources",
			Help: "Unique resources in the last published snapshot",
		}),
	}
}

func (m *Metrics) RecordQuery(view string, status int) {
	if m == nil {
		return
	}
	m.QueryRequestsTotal.WithLabelValues(view, statusLabel(status)).Inc()
}

func (m *Metrics) RecordStoreError() {
	if m == nil {
		return
	}
	m.QueryStoreErrors.Inc()
}

func (m *Metrics) RecordExport(result string, seconds float64) {
	if m == nil {
		return
	}
	m.ExportRunsTotal.WithLabelValues(result).Inc()
	m.ExportDuration.Observe(seconds)
}

func (m *Metrics) SetSnapshotResources(n int) {
	if m == nil {
		return
	}
	m.SnapshotResources.Set(float64(n))
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

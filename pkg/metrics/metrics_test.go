package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordQuery(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordQuery("daily", 200)
	m.RecordQuery("daily", 200)
	m.RecordQuery("foo", 400)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueryRequestsTotal.WithLabelValues("daily", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueryRequestsTotal.WithLabelValues("foo", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.QueryRequestsTotal))
}

func TestRecordStoreError(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordStoreError()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueryStoreErrors))
}

func TestRecordExport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordExport(ResultSuccess, 1.5)
	m.RecordExport(ResultFailure, 0.2)
	m.SetSnapshotResources(42)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportRunsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportRunsTotal.WithLabelValues(ResultFailure)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ExportDuration))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.SnapshotResources))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordQuery("daily", 200)
		m.RecordStoreError()
		m.RecordExport(ResultSuccess, 1)
		m.SetSnapshotResources(1)
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTable(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTable("file", "ok", "ratio", "", 3)
	m.ObserveTable("file", "skipped", "", "", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Tables.WithLabelValues("file", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Tables.WithLabelValues("file", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Strategies.WithLabelValues("brand", "ratio")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Strategies.WithLabelValues("part", "none")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Records.WithLabelValues("file")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTable("page", "ok", "ratio", "ratio", 1)
		m.ObserveDuration("page", time.Now())
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveDuration("page", time.Now())
	m.ObserveTable("page", "ok", "pattern", "pattern", 1)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "match_request_duration_seconds")
	assert.Contains(t, w.Body.String(), `match_column_strategy_total{field="brand",strategy="pattern"} 1`)
}

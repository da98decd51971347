package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "match"

// Metrics: счётчики обработки таблиц.
type Metrics struct {
	Tables     *prometheus.CounterVec // source, outcome
	Strategies *prometheus.CounterVec // field, strategy
	Records    *prometheus.CounterVec // source
	Duration   *prometheus.HistogramVec
}

// New регистрирует метрики в reg. Для тестов - prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Tables: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_total",
			Help:      "Tables processed by source and outcome.",
		}, []string{"source", "outcome"}),
		Strategies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "column_strategy_total",
			Help:      "Strategy that resolved the brand or part column.",
		}, []string{"field", "strategy"}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Match records returned.",
		}, []string{"source"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Match request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}
	reg.MustRegister(m.Tables, m.Strategies, m.Records, m.Duration)
	return m
}

// ObserveTable учитывает одну таблицу: итог и какими стратегиями нашлись бренд/артикул.
func (m *Metrics) ObserveTable(source, outcome, brandStrategy, partStrategy string, records int) {
	if m == nil {
		return
	}
	m.Tables.WithLabelValues(source, outcome).Inc()
	m.Strategies.WithLabelValues("brand", orNone(brandStrategy)).Inc()
	m.Strategies.WithLabelValues("part", orNone(partStrategy)).Inc()
	m.Records.WithLabelValues(source).Add(float64(records))
}

func (m *Metrics) ObserveDuration(source string, start time.Time) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// Handler: /metrics для gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

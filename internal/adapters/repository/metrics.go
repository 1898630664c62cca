package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects document store instrumentation. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	records    *prometheus.GaugeVec
}

// NewMetrics creates the store collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemkeeper_store_operations_total",
				Help: "Total number of document loads and saves",
			},
			[]string{"service", "op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemkeeper_store_operation_duration_seconds",
				Help:    "Document load and save duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "op"},
		),
		records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "itemkeeper_store_records",
				Help: "Number of records in the document after the last successful load or save",
			},
			[]string{"service"},
		),
	}

	reg.MustRegister(m.operations, m.duration, m.records)

	return m
}

func (m *Metrics) observe(service, op string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.operations.WithLabelValues(service, op, result).Inc()
	m.duration.WithLabelValues(service, op).Observe(elapsed.Seconds())
}

func (m *Metrics) setRecords(service string, n int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(service).Set(float64(n))
}

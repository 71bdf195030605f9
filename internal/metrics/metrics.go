// Package metrics exposes Prometheus collectors for report generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "payroll"

// Outcome labels not derived from service error kinds
const (
	OutcomeSuccess     = "success"
	OutcomeBadRequest  = "bad_request"
	OutcomeUnsupported = "unsupported_type"
)

// Metrics groups the report collectors
type Metrics struct {
	reports  *prometheus.CounterVec
	records  prometheus.Counter
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report requests by type and outcome.",
		}, []string{"report_type", "outcome"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Employee records parsed from uploaded timesheets.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent parsing and generating a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"report_type"}),
	}

	for _, c := range []prometheus.Collector{m.reports, m.records, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveReport records one finished report request
func (m *Metrics) ObserveReport(reportType, outcome string, elapsed time.Duration) {
	m.reports.WithLabelValues(reportType, outcome).Inc()
	m.duration.WithLabelValues(reportType).Observe(elapsed.Seconds())
}

// AddRecords counts parsed records
func (m *Metrics) AddRecords(n int) {
	if n > 0 {
		m.records.Add(float64(n))
	}
}

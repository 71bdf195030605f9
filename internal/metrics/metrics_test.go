package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("registers collectors", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		m, err := New(reg)
		require.NoError(t, err)
		m.ObserveReport("payout", OutcomeSuccess, time.Millisecond)

		families, err := reg.Gather()
		require.NoError(t, err)

		var names []string
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.ElementsMatch(t, []string{
			"payroll_reports_total",
			"payroll_records_parsed_total",
			"payroll_report_duration_seconds",
		}, names)
	})

	t.Run("double registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := New(reg)
		require.NoError(t, err)

		_, err = New(reg)

		assert.Error(t, err)
	})
}

func TestMetrics_Record(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveReport("payout", OutcomeSuccess, 20*time.Millisecond)
	m.ObserveReport("payout", OutcomeSuccess, 30*time.Millisecond)
	m.ObserveReport("payout", "value", time.Millisecond)
	m.AddRecords(3)
	m.AddRecords(0)
	m.AddRecords(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reports.WithLabelValues("payout", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("payout", "value")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.records))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

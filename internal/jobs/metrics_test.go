package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metrics
				}
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestTrackerRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	require.NoError(t, m.Track("report:low_stock_scan").End(nil))
	boom := errors.New("boom")
	require.ErrorIs(t, m.Track("report:low_stock_scan").End(boom), boom)

	require.Equal(t, 1.0, gatherValue(t, reg, "aura_jobs_total", map[string]string{"job": "report:low_stock_scan", "status": "success"}))
	require.Equal(t, 1.0, gatherValue(t, reg, "aura_jobs_total", map[string]string{"job": "report:low_stock_scan", "status": "failure"}))
	require.Equal(t, 1.0, gatherValue(t, reg, "aura_jobs_failures_total", map[string]string{"job": "report:low_stock_scan"}))
}

func TestSetLowStockOverwrites(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SetLowStock("co-1", 4)
	m.SetLowStock("co-1", 2)
	m.SetLowStock("", 1)

	require.Equal(t, 2.0, gatherValue(t, reg, "aura_low_stock_items", map[string]string{"company": "co-1"}))
	require.Equal(t, 1.0, gatherValue(t, reg, "aura_low_stock_items", map[string]string{"company": "unknown"}))

	var nilMetrics *Metrics
	nilMetrics.SetLowStock("co-1", 3)
	require.NoError(t, nilMetrics.Track("x").End(nil))
}

func TestHandlerServesJobCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SetLowStock("co-1", 3)
	require.NoError(t, m.Track("report:low_stock_scan").End(nil))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `aura_low_stock_items{company="co-1"} 3`)
	require.Contains(t, body, `aura_jobs_total{job="report:low_stock_scan",status="success"} 1`)
	require.Contains(t, body, "aura_job_duration_seconds_bucket")
}

func TestDefaultMetricsAreGatheredByDefaultHandler(t *testing.T) {
	m := NewMetrics(nil)
	require.Same(t, m, NewMetrics(nil))
	m.SetLowStock("default-co", 2)

	rec := httptest.NewRecorder()
	Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `aura_low_stock_items{company="default-co"} 2`)
}

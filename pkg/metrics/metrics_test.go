package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCounters(t *testing.T) {
	m := New("retailhub_test")

	m.ObserveCheckout("cash")
	m.ObserveCheckout("cash")
	m.ObserveExport("pdf", nil)
	m.ObserveExport("pdf", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Checkouts.WithLabelValues("cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("pdf", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCheckout("card")
		m.ObserveExport("xlsx", nil)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New("retailhub_test")
	m.ObserveCheckout("mobile")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "retailhub_test_checkouts_total")
}

package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"loanrisk/risk"
)

func TestUnmatchedPathsShareOneSeries(t *testing.T) {
	router, metrics, _ := newTestRouter(t, &fakePredictor{outcome: risk.Repay})

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan/%d", i), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RequestDuration))
	assert.Equal(t, uint64(20), histogramCount(t, metrics, unmatchedRoute, "404"))
}

func TestLoggerMiddlewareRecordsPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)
	metrics := NewMetrics(prometheus.NewRegistry())

	handler := Chain(
		RecoveryMiddleware(log),
		RequestIDMiddleware,
		LoggerMiddleware(log, metrics),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("model exploded")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	access := logs.FilterMessage("http request").All()
	require.Len(t, access, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), access[0].ContextMap()["status"])
	assert.NotEmpty(t, access[0].ContextMap()["request_id"])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, uint64(1), histogramCount(t, metrics, unmatchedRoute, "500"))
}

func histogramCount(t *testing.T, metrics *Metrics, route, code string) uint64 {
	t.Helper()
	obs, err := metrics.RequestDuration.GetMetricWithLabelValues(route, code)
	require.NoError(t, err)
	collector, ok := obs.(prometheus.Metric)
	require.True(t, ok)
	var out dto.Metric
	require.NoError(t, collector.Write(&out))
	return out.GetHistogram().GetSampleCount()
}

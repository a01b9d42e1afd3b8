package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filminsight/internal/infrastructure"
	"filminsight/internal/shared/testutil"
)

func TestMetricsHandler_Exposition(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cfg := infrastructure.DefaultOTelConfig()
	cfg.EnableTracing = false
	cfg.EnableMetrics = true

	providers, err := infrastructure.InitializeOTel(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	h := NewMetricsHandler(providers.PrometheusHTTP, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetricsHandler_Disabled(t *testing.T) {
	h := NewMetricsHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "metrics not found")
}

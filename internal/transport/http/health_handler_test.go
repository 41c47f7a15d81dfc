package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/internal/config"
	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/services"
	"pdxpulse/internal/shared/testutil"
)

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func TestHealthHandler_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	dashboardSvc := services.NewDashboardService(config.Default().Dashboard, nil, nil, nil, logger)

	tests := []struct {
		name       string
		clients    services.ClientCounter
		wantStatus int
		wantBody   string
	}{
		{name: "ok", clients: fixedClients(2), wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "degraded without hub", clients: nil, wantStatus: http.StatusServiceUnavailable, wantBody: "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(services.NewHealthService("1.2.3", tt.clients, dashboardSvc, logger), logger)
			rec := httptest.NewRecorder()

			handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body services.HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Equal(t, "1.2.3", body.Version)
			assert.Equal(t, "no dataset loaded", body.Services["dataset"].Message)
		})
	}
}

func TestHealthHandler_Version(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewHealthHandler(services.NewHealthService("1.2.3", fixedClients(0), nil, logger), logger)
	rec := httptest.NewRecorder()

	handler.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"1.2.3"`)
}

func TestMetricsHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, eh).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("exporter", func(t *testing.T) {
		exporter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# HELP http_requests_total\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(exporter, eh).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "# HELP"))
	})
}

package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/internal/infrastructure"
	"pdxpulse/internal/shared/testutil"
	"pdxpulse/pkg/contracts/domain"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "context deadline",
			err:        fmt.Errorf("summary: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "dataset not loaded",
			err:        ErrDatasetNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "DATASET_NOT_FOUND", body["error_code"])
			},
		},
		{
			name:       "missing required column",
			err:        fmt.Errorf("ingest: %w", &domain.MissingRequiredFieldError{Field: domain.ColumnLongitude, Row: 4}),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMissingColumn,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, domain.ColumnLongitude, body["field"])
				assert.Equal(t, float64(5), body["record"])
				assert.Contains(t, body["detail"], "PDX_LNG")
			},
		},
		{
			name:       "upload too large",
			err:        &http.MaxBytesError{Limit: 1024},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(1024), body["limit"])
			},
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("failed to read CSV", nil).WithContext("file_name", "x.csv"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidFile,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "x.csv", body["file_name"])
				assert.Equal(t, "PARSING", body["error_type"])
			},
		},
		{
			name:       "validation app error",
			err:        NewAppValidationError("file is empty"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "not found app error",
			err:        NewNotFoundError("ranked group"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "storage app error hides detail",
			err:        NewStorageError("disk full", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			check: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body["detail"], "disk full")
			},
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-1"))
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/summary", body["instance"])
			assert.Equal(t, "trace-1", body["trace_id"])
			if tt.check != nil {
				tt.check(t, body)
			}

			r, ok := logs.Find(logLevelFor(tt.wantStatus), "request failed")
			require.True(t, ok)
			assert.Equal(t, "error_handler", r.Attrs["component"])
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorHandler(nil, false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, true).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("boom"))

	body := decodeProblem(t, rec)
	assert.NotEmpty(t, body["stack"])
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, true).HandlePanic(rec, httptest.NewRequest(http.MethodPost, "/api/dataset", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "kaboom", body["panic"])
	testutil.AssertLogged(t, logs, levelError, "panic recovered")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewErrorHandler(nil, false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPatch, "/api/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "PATCH")
}

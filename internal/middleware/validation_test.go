package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/shared/testutil"
	api "pdxpulse/pkg/contracts/api/v1"
)

func newValidation(t *testing.T) (*ValidationMiddleware, *apierrors.ErrorHandler) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)
	return NewValidationMiddleware(logger, eh), eh
}

func TestValidateRequest(t *testing.T) {
	vm, _ := newValidation(t)
	h := vm.ValidateRequest(http.HandlerFunc(ok))

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{name: "valid json", method: http.MethodPost, body: `{"category":"gender"}`, want: http.StatusOK},
		{name: "invalid json", method: http.MethodPost, body: `{"category":`, want: http.StatusBadRequest},
		{name: "empty body", method: http.MethodPost, body: "", want: http.StatusOK},
		{name: "get skips", method: http.MethodGet, body: "not json", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/filters", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestValidateRequest_TooLarge(t *testing.T) {
	vm, _ := newValidation(t)
	vm.maxBodySize = 8
	rec := httptest.NewRecorder()

	vm.ValidateRequest(http.HandlerFunc(ok)).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader(`{"category":"gender"}`)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDecodeAndValidate(t *testing.T) {
	vm, _ := newValidation(t)

	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "ok", body: `{"category":"gender","value":"Masculino","toggle":true}`},
		{name: "empty", body: "", wantCode: "EMPTY_BODY"},
		{name: "unknown category", body: `{"category":"income","value":"x"}`, wantCode: "VALIDATION_FAILED", wantField: "category"},
		{name: "missing value", body: `{"category":"age"}`, wantCode: "VALIDATION_FAILED", wantField: "value"},
		{name: "control chars", body: `{"category":"age","value":"18\u0000"}`, wantCode: "VALIDATION_FAILED", wantField: "value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader(tt.body))
			var body api.FilterRequest

			err := vm.DecodeAndValidate(req, &body)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, api.FilterRequest{Category: "gender", Value: "Masculino", Toggle: true}, body)
				return
			}
			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			if tt.wantField != "" {
				fields, ok := apiErr.Details.([]apierrors.ValidationError)
				require.True(t, ok)
				require.NotEmpty(t, fields)
				assert.Equal(t, tt.wantField, fields[0].Field)
			}
		})
	}
}

func TestValidateStruct_LocationRequest(t *testing.T) {
	vm, _ := newValidation(t)

	assert.NoError(t, vm.ValidateStruct(&api.LocationRequest{States: []string{"PE"}, Cities: []string{"Recife"}}))
	assert.Error(t, vm.ValidateStruct(&api.LocationRequest{States: []string{"P\x01E"}}))
}

func TestContentTypeValidator(t *testing.T) {
	_, eh := newValidation(t)
	h := ContentTypeValidator(eh, "application/json")(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestQueryParamValidator_ValidateInt(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	qv := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))

	tests := []struct {
		name   string
		query  string
		want   int
		wantOK bool
	}{
		{name: "default", query: "", want: 50, wantOK: true},
		{name: "in range", query: "?limit=10", want: 10, wantOK: true},
		{name: "not a number", query: "?limit=ten", wantOK: false},
		{name: "out of range", query: "?limit=5000", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got, ok := qv.ValidateInt(rec, httptest.NewRequest(http.MethodGet, "/api/rows"+tt.query, nil), "limit", 1, 500, 50)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

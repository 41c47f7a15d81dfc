package errors

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const levelError = slog.LevelError

func logLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}

func TestAPIError(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "bad", []ValidationError{{Field: "category", Message: "required"}})

	assert.Equal(t, "bad", err.Error())

	data, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `{"status_code":400,"error_code":"VALIDATION_FAILED","message":"bad","details":[{"field":"category","message":"required"}]}`, string(data))
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("value", "must not be empty")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, []ValidationError{{Field: "value", Message: "must not be empty"}}, err.Details)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrRateLimitExceeded)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Error.ErrorCode)
}

func TestAppError(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := NewParsingError("failed to read CSV", cause).WithContext("line", 3)

	assert.Equal(t, "[PARSING] failed to read CSV: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, err.Context["line"])

	assert.Equal(t, "[NOT_FOUND] dataset not found", NewNotFoundError("dataset").Error())
	assert.Equal(t, ErrTypeConfig, NewConfigError("bad", nil).Type)

	var zero AppError
	zero.WithContext("k", "v")
	assert.Equal(t, "v", zero.Context["k"])
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "/x").
		WithExtension("trace_id", "abc").
		WithExtension("status", "ignored")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"/errors/not-found","title":"Not Found","status":404,"instance":"/x","trace_id":"abc"}`, string(data))
}

package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(buf *bytes.Buffer) *http.Request {
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), l)
	return httptest.NewRequest(http.MethodGet, "/api/flashcards", nil).WithContext(ctx)
}

func TestRespondWithErrorAndLog_ServerError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	r := requestWithLogger(&logs)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.NotEmpty(t, resp.CorrelationID)
	assert.NotContains(t, w.Body.String(), "users_email_key")

	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), resp.CorrelationID)
}

func TestRespondWithErrorAndLog_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  int
		opts  []ResponseOption
		level string
	}{
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusNotFound, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			w := httptest.NewRecorder()
			RespondWithErrorAndLog(w, requestWithLogger(&logs), tc.code, "msg", errors.New("cause"), tc.opts...)

			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, logs.String(), `"level":"`+tc.level+`"`)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Empty(t, resp.CorrelationID, "client errors carry no correlation id")
		})
	}
}

func TestRespondWithValidationError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := httptest.NewRecorder()
	RespondWithValidationError(w, requestWithLogger(&logs), map[string]string{"front": "is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, MsgValidationFailed, resp.Error)
	assert.Equal(t, "is required", resp.Details["front"])
}

package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/redact"
)

// MsgValidationFailed is the error text of every 400 carrying field details.
const MsgValidationFailed = "Validation failed"

// ErrorResponse is the body of every error response. CorrelationID is set on
// 5xx responses so users can quote it to support.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Details       map[string]string `json:"details,omitempty"`
	TraceID       string            `json:"traceId,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// ResponseOption customizes error response logging.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel logs a 4xx response at WARN instead of DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithError writes an error response without an underlying error to
// log.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithValidationError writes a 400 with a field -> message map.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("request validation failed",
		slog.String("path", r.URL.Path),
		slog.Any("fields", fields))

	RespondWithJSON(w, r, http.StatusBadRequest, ErrorResponse{
		Error:   MsgValidationFailed,
		Details: fields,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes a sanitized error response and logs the
// redacted err. 5xx responses are logged at ERROR and carry a correlation
// ID; 4xx responses are logged at DEBUG unless elevated.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())
	resp := ErrorResponse{Error: userMessage, TraceID: traceID}
	if status >= http.StatusInternalServerError {
		resp.CorrelationID = NewID()
	}

	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if resp.CorrelationID != "" {
		attrs = append(attrs, slog.String("correlation_id", resp.CorrelationID))
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	var o responseOptions
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	case o.elevateLogLevel && status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, resp)
}

// Package shared holds request context keys and the JSON request/response
// helpers used by both handlers and middleware.
package shared

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// idAlphabet avoids characters that are easy to misread when a user quotes
// an ID to support.
const (
	idAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	idLength   = 16
)

// WithTraceID stores traceID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// SetTraceID stores a freshly generated trace ID in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewID())
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// NewID returns a random identifier for traces and error correlation.
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		// Only fails when the system random source fails.
		slog.Error("failed to generate random id", slog.String("error", err.Error()))
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
)

// MsgInternalError is returned for recovered panics.
const MsgInternalError = "An unexpected error occurred"

// Recover turns a panic into a 500 response with a correlation ID. The
// stack trace is logged, never returned.
func Recover(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http relies on this sentinel to abort the response
					panic(rec)
				}

				logger.FromContextOrDefault(r.Context(), base).Error("panic recovered",
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgInternalError,
					fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

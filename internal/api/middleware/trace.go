// Package middleware holds HTTP middleware for the flashcard API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/KalminX/flash-card/internal/api/shared"
)

// Trace adds a trace ID to the request context. It should be applied early
// in the middleware chain so all subsequent handlers have access to the
// trace ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.WithTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

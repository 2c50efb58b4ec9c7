package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that attaches a trace ID to the
// request context and stores a trace-enriched logger alongside it, so
// handlers retrieved via logger.FromContextOrDefault log with the trace ID.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

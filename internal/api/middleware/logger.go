package middleware

import (
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestIDHeader echoes the request ID assigned by chi's RequestID middleware.
const RequestIDHeader = "X-Request-Id"

// Logger returns a middleware that logs every HTTP request with its status
// code, duration and request ID. The request ID is also sent back in
// RequestIDHeader so clients can quote it.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	// Strip CR/LF from user-supplied values to prevent log injection.
	sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimiddleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(RequestIDHeader, reqID)
			}

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := []zap.Field{
				zap.String("method", sanitize(r.Method)),
				zap.String("path", sanitize(r.URL.Path)),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("user", UserIDFromContext(r.Context())),
			}
			if reqID != "" {
				fields = append(fields, zap.String("request_id", reqID))
			}

			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				logger.Error("request", fields...)
			case wrapped.statusCode >= http.StatusBadRequest:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

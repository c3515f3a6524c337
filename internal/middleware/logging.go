package middleware

import (
	"net/http"

	"gridiron-be/internal/logger"
	"gridiron-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware writes one access log line per request and feeds the
// request counters in m. It must run inside RequestIDMiddleware.
func LoggingMiddleware(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := metrics.StartTimer()

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			m.Observe(rec.statusCode)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", timer.Duration()),
				zap.String("ip", r.RemoteAddr),
			}

			logger.FromCtx(r.Context()).Info("HTTP Request", fields...)
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// responseCapture records the status code written by the handler.
type responseCapture struct {
	http.ResponseWriter
	status int
}

func (c *responseCapture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

// RequestLogging creates middleware that logs each request with its outcome
// and duration.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			capture := &responseCapture{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(capture, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", capture.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

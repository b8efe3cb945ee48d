package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access log line per request using the
// request-scoped logger. Server errors are logged at error level.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		status := rec.Status()
		level := zerolog.InfoLevel
		if status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		logger.FromRequest(r).WithLevel(level).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("size", rec.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}

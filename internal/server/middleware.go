package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sciforge/navbuilder/internal/logfields"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging wraps a handler with request logging and request counting.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		httpRequestsTotal.WithLabelValues(fmt.Sprintf("%dxx", rec.status/100)).Inc()
		slog.Debug("Request handled",
			slog.String("method", req.Method),
			logfields.Path(req.URL.Path),
			slog.Int("status", rec.status),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	})
}

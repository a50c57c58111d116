package middleware

import (
	"log"
	"net/http"
	"time"
)

// slowThreshold flags requests that eat into the 30s analysis budget.
const slowThreshold = 10 * time.Second

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// LoggingMiddleware logs one key=value line per request. Health probes are
// skipped to keep the log useful under frequent orchestrator checks.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		tag := "request"
		if elapsed > slowThreshold {
			tag = "slow_request"
		}
		log.Printf(
			"%s method=%s path=%s status=%d duration=%s bytes=%d ip=%s",
			tag, r.Method, r.URL.Path, rec.status, elapsed, rec.bytes, r.RemoteAddr,
		)
	})
}

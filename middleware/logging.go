package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
)

// statusRecorder captures the response code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs each request and records it in metrics under its route template
func RequestLogger(m *metrics.Metrics) mux.MiddlewareFunc {
	logger := logging.WithPrefix("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			elapsed := time.Since(start)
			m.HTTPRequest(r.Method, route, rec.status, elapsed)

			if rec.status >= http.StatusInternalServerError {
				logger.Errorf("%s %s -> %d (%v) from %s", r.Method, r.URL.Path, rec.status, elapsed, r.RemoteAddr)
			} else {
				logger.Debugf("%s %s -> %d (%v)", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}

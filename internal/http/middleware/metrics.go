package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"chinook/internal/metrics"
)

// Metrics records request counts and latency per route template. Installed with
// mux.Router.Use it sees the matched route; wrapped around the router's NotFound
// and MethodNotAllowed handlers it records them as "unmatched".
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		metrics.RecordAPIRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}

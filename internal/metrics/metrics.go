// Package metrics provides Prometheus metrics for the listing model and its views.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbrowser_loads_total",
			Help: "Total number of directory loads",
		},
		[]string{"result"},
	)

	loadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fbrowser_load_duration_seconds",
			Help:    "Time to enumerate and sort one directory",
			Buckets: prometheus.DefBuckets,
		},
	)

	listingEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fbrowser_listing_entries",
			Help: "Number of entries in the current listing",
		},
	)

	removalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbrowser_removals_total",
			Help: "Total number of attempted file removals",
		},
		[]string{"result"},
	)

	renamesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbrowser_renames_total",
			Help: "Total number of attempted renames",
		},
		[]string{"result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fbrowser_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fbrowser_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// RecordLoad counts one load attempt. entries is ignored on failure.
func RecordLoad(ok bool, entries int) {
	loadsTotal.WithLabelValues(result(ok)).Inc()
	if ok {
		listingEntries.Set(float64(entries))
	}
}

// ObserveLoadDuration records how long reading one directory took. Callers
// that only install a listing read elsewhere do not call it.
func ObserveLoadDuration(d time.Duration) {
	loadDuration.Observe(d.Seconds())
}

func RecordRemoval(ok bool) {
	removalsTotal.WithLabelValues(result(ok)).Inc()
}

func RecordRename(ok bool) {
	renamesTotal.WithLabelValues(result(ok)).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled with the chi route
// pattern, so row numbers in URLs do not create new series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		RecordHTTPRequest(r.Method, path, rw.statusCode, time.Since(start))
	})
}

// RecordHTTPRequest records a completed HTTP request. path should be the
// route pattern, not the raw URL.
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

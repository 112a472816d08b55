package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Playground API metrics. Path labels use chi route patterns and source labels
// are only set for sources the board knows, so cardinality stays fixed.
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "observerkit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Playground API requests by route, method and status",
		},
		[]string{"path", "method", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "observerkit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Playground API request latency in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"path", "method", "status"},
	)

	inflightRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "observerkit",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Playground API requests being served",
		},
		[]string{"path"},
	)

	eventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "observerkit",
			Subsystem: "http",
			Name:      "events_emitted_total",
			Help:      "Events a source broadcast on behalf of an API call",
		},
		[]string{"source", "event"},
	)

	eventsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "observerkit",
			Subsystem: "http",
			Name:      "events_rejected_total",
			Help:      "Event requests that reached no source, by reason",
		},
		[]string{"event", "reason"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, inflightRequests, eventsEmitted, eventsRejected)
}

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware counts and times every request. It labels by route
// pattern, which chi only knows once the request has been routed.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		path := routePatternOrPath(r)
		status := itoa(sr.status)
		requestsTotal.WithLabelValues(path, r.Method, status).Inc()
		requestDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// inflightMiddleware must be installed inside a route group so the pattern
// is already resolved when it runs.
func inflightMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g := inflightRequests.WithLabelValues(routePatternOrPath(r))
		g.Inc()
		defer g.Dec()
		next.ServeHTTP(w, r)
	})
}

func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func countEmitted(source, event string) { eventsEmitted.WithLabelValues(source, event).Inc() }

func countRejected(event, reason string) { eventsRejected.WithLabelValues(event, reason).Inc() }

// itoa formats the small positive integers used as status labels.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

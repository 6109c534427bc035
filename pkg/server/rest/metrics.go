package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
type metrics struct {
	SPQueryCount       *prometheus.CounterVec
	settledNodes       *prometheus.HistogramVec
	httpDuration       *prometheus.HistogramVec
	durationSummary    prometheus.Summary
	responseStatusCode *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		SPQueryCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "begraphes",
			Name:      "shortestpath_query_count",
			Help:      "The total number of shortest path query",
		}, []string{"algorithm", "found"}),
		settledNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "begraphes",
			Name:      "shortestpath_settled_nodes",
			Help:      "Number of nodes settled by one shortest path query",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}, []string{"algorithm"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "begraphes",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.05, 0.1, 0.15, 0.2, 0.25, 0.3}, // 0.001 = 1ms
		}, []string{"method", "path"}),
		durationSummary: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace:  "begraphes",
			Name:       "shortestpath_request_duration_summary_seconds",
			Help:       "The duration of request",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		responseStatusCode: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "begraphes",
				Name:      "response_status_code",
				Help:      "The status code of http response",
			}, []string{"status", "method", "path"},
		),
	}
	reg.MustRegister(m.SPQueryCount, m.settledNodes, m.httpDuration, m.durationSummary, m.responseStatusCode)
	return m
}

func (m *metrics) observeQuery(algorithm string, found bool, settled int) {
	m.SPQueryCount.WithLabelValues(algorithm, strconv.FormatBool(found)).Inc()
	m.settledNodes.WithLabelValues(algorithm).Observe(float64(settled))
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func PromeHttpMiddleware(m *metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := NewResponseWriter(w)
			now := time.Now()

			next.ServeHTTP(rw, r)

			// route pattern, not the raw path, to keep label cardinality bounded
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}).Observe(time.Since(now).Seconds())
			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method, "path": path}).Inc()
			m.durationSummary.Observe(time.Since(now).Seconds())
		})
	}
}

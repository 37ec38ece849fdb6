package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_mutations_total",
			Help: "Total number of lead create/update/delete attempts",
		},
		[]string{"operation", "result"},
	)

	leadsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leads_total",
			Help: "Number of stored leads",
		},
	)

	leadsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leads_tracked",
			Help: "Number of leads with utm_source, gclid or fbclid",
		},
	)

	leadsNewThisWeek = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leads_new_last_7_days",
			Help: "Number of leads created in the last 7 days",
		},
	)

	leadSources = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_active_sources",
			Help: "Number of distinct utm_source values",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão do chi (/leads/{id}) para não explodir a
// cardinalidade com ids.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordLeadMutation(operation, result string) {
	leadMutations.WithLabelValues(operation, result).Inc()
}

type LeadStats struct {
	Total       int
	Tracked     int
	NewThisWeek int
	Sources     int
}

func SetLeadStats(s LeadStats) {
	leadsTotal.Set(float64(s.Total))
	leadsTracked.Set(float64(s.Tracked))
	leadsNewThisWeek.Set(float64(s.NewThisWeek))
	leadSources.Set(float64(s.Sources))
}

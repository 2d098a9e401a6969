package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cardsheet",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardsheet",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamRequestsTotal counts outbound GETs by service and result
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardsheet",
			Name:      "upstream_requests_total",
			Help:      "Total outbound API requests",
		},
		[]string{"service", "status"},
	)

	// UpstreamRequestDuration observes outbound GET latency
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cardsheet",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service"},
	)

	// SearchPagesFetched observes how many result pages a search needed
	SearchPagesFetched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cardsheet",
			Name:      "search_pages_fetched",
			Help:      "Result pages fetched per search",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		},
	)

	// SearchesTotal counts searches by outcome
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardsheet",
			Name:      "searches_total",
			Help:      "Total card table searches",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		SearchPagesFetched,
		SearchesTotal,
	)
}

// Middleware records HTTP request duration and count
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := normalizePath(c.FullPath())

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// normalizePath keeps unmatched routes from blowing up label cardinality
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// ObserveUpstream records one outbound request
func ObserveUpstream(service string, status string, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(service, status).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

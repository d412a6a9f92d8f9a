package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_pagination_requests_total",
			Help: "Paginated list requests by status and page depth",
		},
		[]string{"status", "page_range"},
	)

	durationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_pagination_duration_seconds",
			Help:    "Paginated list latency by layer",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	matchingTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "article_total_count",
			Help: "Matching-article total reported by the last count query",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_pagination_errors_total",
			Help: "Paginated list failures by type",
		},
		[]string{"type"},
	)
)

// RecordRequest counts one served page. Page numbers are bucketed so the
// label cardinality stays bounded.
func RecordRequest(statusCode int, page int) {
	requestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRange(page)).Inc()
}

// RecordDuration observes one timing sample for the named layer
// (handler, service, repository).
func RecordDuration(operation string, duration float64) {
	durationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount publishes the total from the most recent count query.
func UpdateTotalCount(count int64) {
	matchingTotal.Set(float64(count))
}

// RecordError counts one failure; errorType is "validation", "database",
// or "timeout".
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}

func pageRange(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}

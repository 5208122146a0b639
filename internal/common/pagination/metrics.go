package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts list requests.
	// Labels: status (HTTP status code), window (none, offset, limit, both)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_list_requests_total",
			Help: "Total number of article list requests",
		},
		[]string{"status", "window"},
	)

	// DurationSeconds tracks request duration distribution.
	// Labels: operation (handler, service, repository)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_list_duration_seconds",
			Help:    "Article list duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// ReturnedItems tracks how many items a list request returned.
	ReturnedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_list_returned_items",
			Help:    "Number of articles returned per list request",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000},
		},
	)

	// ErrorsTotal counts list errors by type.
	// Labels: type (validation, sort, database)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_list_errors_total",
			Help: "Total number of article list errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a list request metric.
func RecordRequest(statusCode int, params Params) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), windowLabel(params)).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordReturned records the number of items returned.
func RecordReturned(count int) {
	ReturnedItems.Observe(float64(count))
}

// RecordError records an error metric.
// errorType should be one of: "validation", "sort", "database"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// windowLabel keeps the label set small and fixed.
func windowLabel(p Params) string {
	switch {
	case !p.IsWindowed():
		return "none"
	case p.Offset != nil && p.Limit != nil:
		return "both"
	case p.Offset != nil:
		return "offset"
	default:
		return "limit"
	}
}

package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database metrics
var (
	// DBQueryDuration measures repository round trips by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBQueryErrors counts failed repository round trips by operation.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		},
		[]string{"operation"},
	)
)

// Article metrics
var (
	// ArticlesTotal is the last observed number of stored articles.
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)

	// ArticleWritesTotal counts committed article writes.
	ArticleWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_writes_total",
			Help: "Total number of article writes by operation and result",
		},
		[]string{"operation", "result"}, // result: success, failure
	)
)

// RecordDBQuery records the duration of a repository operation such as
// "get", "list", "count" or "apply".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBError counts a failed repository operation.
func RecordDBError(operation string) {
	DBQueryErrors.WithLabelValues(operation).Inc()
}

// RecordArticleWrite counts one staged change that went through a commit.
func RecordArticleWrite(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ArticleWritesTotal.WithLabelValues(operation, result).Inc()
}

// UpdateArticlesTotal sets the article gauge.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RegisterDBStats exposes the connection pool statistics of db under the
// go_sql_* metric family, labelled with dbName. Registering the same name
// twice is not an error.
func RegisterDBStats(db *sql.DB, dbName string) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, dbName))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

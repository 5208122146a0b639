// Package metrics holds the Prometheus collectors for article storage.
//
// HTTP request metrics live with the HTTP handlers; this package covers what
// happens below them: query latency, committed writes, the article count and
// the connection pool.
//
// All collectors register with the default Prometheus registry and are
// exposed via /metrics.
//
//	start := time.Now()
//	err := repo.Apply(ctx, changes)
//	metrics.RecordDBQuery("apply", time.Since(start))
//	metrics.RecordArticleWrite("create", err == nil)
package metrics

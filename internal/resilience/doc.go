// Package resilience holds fault tolerance helpers for the storage layer.
//
// The circuitbreaker subpackage wraps the article repository so that a
// failing database is answered with a fast ErrUnavailable instead of piling
// requests onto dead connections.
//
//	repo := circuitbreaker.NewArticleRepository(postgres.NewArticleRepo(db), circuitbreaker.DBConfig())
package resilience

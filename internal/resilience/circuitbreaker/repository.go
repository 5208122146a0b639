package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
	"simple-cms/internal/repository"
)

// DBConfig returns configuration for the storage breaker.
// Opens after 5 consecutive failures, 30 second timeout.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful:     isHealthyOutcome,
	}
}

// isHealthyOutcome treats answers the database gave on purpose as successes:
// a missing row, a rejected sort field, bad input or a caller that went away
// say nothing about the health of the database.
func isHealthyOutcome(err error) bool {
	return err == nil ||
		errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrInvalidInput) ||
		errors.Is(err, sorting.ErrInvalidSortField) ||
		errors.Is(err, context.Canceled)
}

// ArticleRepository guards every call to the wrapped repository with one
// shared breaker.
type ArticleRepository struct {
	next repository.ArticleRepository
	cb   *CircuitBreaker
}

// NewArticleRepository wraps next with a breaker built from cfg.
func NewArticleRepository(next repository.ArticleRepository, cfg Config) *ArticleRepository {
	return &ArticleRepository{next: next, cb: New(cfg)}
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)

func (r *ArticleRepository) Get(ctx context.Context, id int64) (*entity.Article, error) {
	return Call(r.cb, func() (*entity.Article, error) { return r.next.Get(ctx, id) })
}

func (r *ArticleRepository) List(ctx context.Context, q repository.ArticleListQuery) ([]*entity.Article, error) {
	return Call(r.cb, func() ([]*entity.Article, error) { return r.next.List(ctx, q) })
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	return Call(r.cb, func() (int64, error) { return r.next.Count(ctx) })
}

func (r *ArticleRepository) Apply(ctx context.Context, changes []repository.Change) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.next.Apply(ctx, changes)
	})
	return err
}

// Breaker exposes the underlying breaker for readiness checks.
func (r *ArticleRepository) Breaker() *CircuitBreaker {
	return r.cb
}

package repository

import (
	"context"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
)

// ArticleListQuery describes one list call. Sort keys are resolved against
// ArticleSortSchema. Offset and Limit are applied only when set, each on its own.
type ArticleListQuery struct {
	Sort   []sorting.Key
	Offset *int
	Limit  *int
}

// ArticleRepository is the storage port for articles.
type ArticleRepository interface {
	// Get returns (nil, nil) if the article does not exist.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// List returns articles in the requested order, or in storage order when
	// q.Sort is empty. Unknown sort fields fail with sorting.ErrInvalidSortField.
	List(ctx context.Context, q ArticleListQuery) ([]*entity.Article, error)
	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)
	// Apply writes every change in one transaction, in order. Inserted articles
	// receive their storage-assigned ID. An update or delete that matches no row
	// fails with entity.ErrNotFound and nothing is written.
	Apply(ctx context.Context, changes []Change) error
}

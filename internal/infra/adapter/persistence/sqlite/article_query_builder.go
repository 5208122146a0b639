// Package sqlite provides the SQLite implementation of the article repository.
// Timestamps are stored as INTEGER Unix nanoseconds so they sort numerically.
package sqlite

import (
	"strings"

	"simple-cms/internal/repository"
)

// ArticleQueryBuilder renders the ORDER BY / LIMIT / OFFSET tail of the list
// query with SQLite positional placeholders.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildListClause returns the clause to append to the list SELECT and its
// arguments. SQLite has no bare OFFSET, so an offset without a limit is
// rendered as LIMIT -1 OFFSET ?.
func (qb *ArticleQueryBuilder) BuildListClause(q repository.ArticleListQuery) (string, []any, error) {
	orderBy, err := repository.ArticleSortSchema.OrderByClause(q.Sort)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	switch {
	case orderBy == "":
		sb.WriteString("ORDER BY id ASC")
	case repository.SortsByID(q.Sort):
		sb.WriteString(orderBy)
	default:
		sb.WriteString(orderBy)
		sb.WriteString(", id ASC")
	}

	var args []any
	switch {
	case q.Limit != nil && q.Offset != nil:
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, *q.Limit, *q.Offset)
	case q.Limit != nil:
		sb.WriteString(" LIMIT ?")
		args = append(args, *q.Limit)
	case q.Offset != nil:
		sb.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, *q.Offset)
	}
	return sb.String(), args, nil
}

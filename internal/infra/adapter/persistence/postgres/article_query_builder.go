// Package postgres provides the PostgreSQL implementation of the article repository.
package postgres

import (
	"fmt"
	"strings"

	"simple-cms/internal/repository"
)

// ArticleQueryBuilder renders the ORDER BY / LIMIT / OFFSET tail of the list
// query with PostgreSQL numbered placeholders.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildListClause returns the clause to append to the list SELECT and its
// arguments. Rows tie-break on id so pages are stable; without sort keys the
// result is in id order. Offset and Limit are emitted only when set.
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
	if q.Limit != nil {
		args = append(args, *q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if q.Offset != nil {
		args = append(args, *q.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args, nil
}

package repository

import (
	"cmp"
	"strings"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
)

// ArticleSortSchema is the allow-list of fields clients may sort articles by.
// Column names are the articles table columns shared by every adapter.
var ArticleSortSchema = sorting.MustSchema(map[string]sorting.Field[*entity.Article]{
	"id": {
		Column:  "id",
		Compare: func(a, b *entity.Article) int { return cmp.Compare(a.ID, b.ID) },
	},
	"title": {
		Column:  "title",
		Compare: func(a, b *entity.Article) int { return strings.Compare(a.Title, b.Title) },
	},
	"body": {
		Column:  "body",
		Compare: func(a, b *entity.Article) int { return strings.Compare(a.Body, b.Body) },
	},
	"timestamp": {
		Column:  "timestamp",
		Compare: func(a, b *entity.Article) int { return a.Timestamp.Compare(b.Timestamp) },
	},
})

// SortsByID reports whether keys already order by id, in which case adapters
// need no extra tie-break column.
func SortsByID(keys []sorting.Key) bool {
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k.Field), "id") {
			return true
		}
	}
	return false
}

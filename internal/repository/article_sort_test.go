package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
	"simple-cms/internal/repository"
)

func TestArticleSortSchema_Names(t *testing.T) {
	t.Parallel()

	want := []string{"body", "id", "timestamp", "title"}
	if diff := cmp.Diff(want, repository.ArticleSortSchema.Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleSortSchema_TitleThenTimestampDesc(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := []*entity.Article{
		{ID: 1, Title: "Article 2", Body: "Article body 1", Timestamp: t0},
		{ID: 2, Title: "Article 1", Body: "Article body 2", Timestamp: t0.Add(time.Minute)},
		{ID: 3, Title: "Article 1", Body: "Article body 3", Timestamp: t0.Add(2 * time.Minute)},
	}

	keys, err := sorting.Parse("title,timestamp desc")
	if err != nil {
		t.Fatal(err)
	}
	if err := repository.ArticleSortSchema.SortSlice(articles, keys); err != nil {
		t.Fatal(err)
	}

	var got []int64
	for _, a := range articles {
		got = append(got, a.ID)
	}
	if diff := cmp.Diff([]int64{3, 2, 1}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	clause, err := repository.ArticleSortSchema.OrderByClause(keys)
	if err != nil {
		t.Fatal(err)
	}
	if clause != "ORDER BY title ASC, timestamp DESC" {
		t.Fatalf("clause = %q", clause)
	}
}

func TestArticleSortSchema_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := repository.ArticleSortSchema.OrderByClause([]sorting.Key{{Field: "author"}})
	if !errors.Is(err, sorting.ErrInvalidSortField) {
		t.Fatalf("err = %v, want ErrInvalidSortField", err)
	}
}

func TestSortsByID(t *testing.T) {
	t.Parallel()

	if repository.SortsByID(nil) {
		t.Error("nil keys must not sort by id")
	}
	if repository.SortsByID([]sorting.Key{{Field: "title"}}) {
		t.Error("title must not count as id")
	}
	if !repository.SortsByID([]sorting.Key{{Field: "title"}, {Field: "Id", Desc: true}}) {
		t.Error("Id should match case-insensitively")
	}
}

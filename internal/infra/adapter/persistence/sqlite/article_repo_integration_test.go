package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
	"simple-cms/internal/infra/adapter/persistence/sqlite"
	"simple-cms/internal/infra/db"
	"simple-cms/internal/repository"
)

func openMemory(t *testing.T) repository.ArticleRepository {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenWithConfig(ctx, db.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), db.DefaultConnectionConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, db.DriverSQLite))

	repo := sqlite.NewArticleRepo(conn)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err = db.Seed(ctx, repo, func() time.Time { return now }, true)
	require.NoError(t, err)
	return repo
}

func ids(arts []*entity.Article) []int64 {
	out := make([]int64, 0, len(arts))
	for _, a := range arts {
		out = append(out, a.ID)
	}
	return out
}

func TestArticleRepo_SQLite_List(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()

	parse := func(s string) []sorting.Key {
		keys, err := sorting.Parse(s)
		require.NoError(t, err)
		return keys
	}

	tests := []struct {
		name  string
		query repository.ArticleListQuery
		want  []int64
	}{
		{name: "storage order", query: repository.ArticleListQuery{}, want: []int64{1, 2, 3}},
		{name: "title then body", query: repository.ArticleListQuery{Sort: parse("title,body")}, want: []int64{2, 1, 3}},
		{name: "body desc", query: repository.ArticleListQuery{Sort: parse("body desc")}, want: []int64{1, 2, 3}},
		{name: "title desc", query: repository.ArticleListQuery{Sort: parse("TITLE desc")}, want: []int64{3, 1, 2}},
		{name: "offset", query: repository.ArticleListQuery{Offset: intPtr(1)}, want: []int64{2, 3}},
		{name: "limit", query: repository.ArticleListQuery{Limit: intPtr(2)}, want: []int64{1, 2}},
		{name: "limit zero", query: repository.ArticleListQuery{Limit: intPtr(0)}, want: []int64{}},
		{name: "offset past end", query: repository.ArticleListQuery{Offset: intPtr(10)}, want: []int64{}},
		{name: "window after sort", query: repository.ArticleListQuery{Sort: parse("body"), Offset: intPtr(1), Limit: intPtr(1)}, want: []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestArticleRepo_SQLite_ApplyRoundTrip(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()
	later := time.Date(2026, 5, 5, 5, 5, 5, 5, time.UTC)

	a, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, a)
	a.Title = "changed"
	a.Timestamp = later

	require.NoError(t, repo.Apply(ctx, []repository.Change{{Op: repository.OpUpdate, Article: a}}))

	got, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Title)
	assert.True(t, got.Timestamp.Equal(later), "nanosecond precision survives storage")

	// 失敗した変更セットは全体がロールバックされる
	err = repo.Apply(ctx, []repository.Change{
		{Op: repository.OpDelete, Article: &entity.Article{ID: 1}},
		{Op: repository.OpDelete, Article: &entity.Article{ID: 404}},
	})
	require.True(t, errors.Is(err, entity.ErrNotFound), "err=%v", err)

	still, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, still, "article 1 must survive the rolled-back delete")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

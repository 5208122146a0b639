package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-cms/internal/infra/adapter/persistence/sqlite"
	"simple-cms/internal/infra/db"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenWithConfig(ctx, db.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), db.DefaultConnectionConfig())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	require.NoError(t, db.MigrateUp(ctx, conn, db.DriverSQLite))

	repo := sqlite.NewArticleRepo(conn)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	n, err := db.Seed(ctx, repo, clock, false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// 既にデータがあれば何もしない
	n, err = db.Seed(ctx, repo, clock, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = db.Seed(ctx, repo, clock, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)

	a, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Article body 3", a.Body)
	assert.True(t, a.Timestamp.Equal(now), "seeded articles carry the commit instant")
}

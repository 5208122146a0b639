// Package persistence picks the article repository implementation that
// matches the configured database driver.
package persistence

import (
	"database/sql"

	"simple-cms/internal/infra/adapter/persistence/postgres"
	"simple-cms/internal/infra/adapter/persistence/sqlite"
	"simple-cms/internal/infra/db"
	"simple-cms/internal/repository"
)

// NewArticleRepo returns the SQL dialect for driver on top of conn.
func NewArticleRepo(driver db.Driver, conn *sql.DB) repository.ArticleRepository {
	if driver == db.DriverSQLite {
		return sqlite.NewArticleRepo(conn)
	}
	return postgres.NewArticleRepo(conn)
}

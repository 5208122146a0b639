package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaUp = map[Driver][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS articles (
    id        SERIAL PRIMARY KEY,
    title     VARCHAR(255) NOT NULL,
    body      TEXT NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL
)`,
		// sort=timestamp desc is the most common listing
		`CREATE INDEX IF NOT EXISTS idx_articles_timestamp ON articles(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS articles (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    title     TEXT NOT NULL,
    body      TEXT NOT NULL,
    timestamp INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_timestamp ON articles(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
	},
}

var schemaDown = []string{
	`DROP INDEX IF EXISTS idx_articles_title`,
	`DROP INDEX IF EXISTS idx_articles_timestamp`,
	`DROP TABLE IF EXISTS articles`,
}

// MigrateUp creates the articles table and its indexes if they do not exist.
func MigrateUp(ctx context.Context, db *sql.DB, driver Driver) error {
	stmts, ok := schemaUp[driver]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}

// MigrateDown drops everything MigrateUp created.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaDown {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}

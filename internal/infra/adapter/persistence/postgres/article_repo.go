package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"simple-cms/internal/domain/entity"
	"simple-cms/internal/observability/metrics"
	"simple-cms/internal/observability/tracing"
	"simple-cms/internal/repository"
)

const selectArticles = `SELECT id, title, body, timestamp FROM articles`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Get", attribute.Int64("article.id", id))
	defer span.End()
	defer observe("get", time.Now())

	const query = selectArticles + ` WHERE id = $1 LIMIT 1`
	var a entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Title, &a.Body, &a.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		metrics.RecordDBError("get")
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("Get: %w", err)
	}
	a.Timestamp = a.Timestamp.UTC()
	return &a, nil
}

func (repo *ArticleRepo) List(ctx context.Context, q repository.ArticleListQuery) ([]*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.List")
	defer span.End()
	defer observe("list", time.Now())

	clause, args, err := repo.queryBuilder.BuildListClause(q)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, selectArticles+" "+clause, args...)
	if err != nil {
		metrics.RecordDBError("list")
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 16)
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		a.Timestamp = a.Timestamp.UTC()
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	span.SetAttributes(attribute.Int("article.count", len(articles)))
	return articles, nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Count")
	defer span.End()
	defer observe("count", time.Now())

	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		metrics.RecordDBError("count")
		tracing.RecordError(span, err)
		return 0, fmt.Errorf("Count: %w", err)
	}
	metrics.UpdateArticlesTotal(n)
	return n, nil
}

// Apply writes the change set inside one transaction.
func (repo *ArticleRepo) Apply(ctx context.Context, changes []repository.Change) (err error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Apply", attribute.Int("change.count", len(changes)))
	defer span.End()
	defer observe("apply", time.Now())
	defer func() {
		for _, c := range changes {
			metrics.RecordArticleWrite(c.Op.String(), err == nil)
		}
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			metrics.RecordDBError("apply")
			tracing.RecordError(span, err)
		}
	}()

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Apply: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range changes {
		if err = applyOne(ctx, tx, c); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Apply: commit: %w", err)
	}
	return nil
}

func applyOne(ctx context.Context, tx *sql.Tx, c repository.Change) error {
	a := c.Article
	switch c.Op {
	case repository.OpCreate:
		const query = `INSERT INTO articles (title, body, timestamp) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRowContext(ctx, query, a.Title, a.Body, a.Timestamp).Scan(&a.ID); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	case repository.OpUpdate:
		const query = `UPDATE articles SET title = $1, body = $2, timestamp = $3 WHERE id = $4`
		res, err := tx.ExecContext(ctx, query, a.Title, a.Body, a.Timestamp, a.ID)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}
		return requireRow(res, a.ID)
	case repository.OpDelete:
		res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, a.ID)
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		return requireRow(res, a.ID)
	default:
		return fmt.Errorf("unsupported op %s: %w", c.Op, entity.ErrInvalidInput)
	}
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, entity.ErrNotFound)
	}
	return nil
}

func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

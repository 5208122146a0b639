package sqlite

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

// ArticleRepo implements repository.ArticleRepository on SQLite.
type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db, queryBuilder: NewArticleQueryBuilder()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var (
		a  entity.Article
		ts int64
	)
	if err := s.Scan(&a.ID, &a.Title, &a.Body, &ts); err != nil {
		return nil, err
	}
	a.Timestamp = time.Unix(0, ts).UTC()
	return &a, nil
}

// Get returns nil, nil when no article has the given id.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Get", attribute.Int64("article.id", id))
	defer span.End()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get", time.Since(start)) }()

	a, err := scanArticle(repo.db.QueryRowContext(ctx, selectArticles+` WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		metrics.RecordDBError("get")
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return a, nil
}

// List retrieves articles in the order and window described by q.
func (repo *ArticleRepo) List(ctx context.Context, q repository.ArticleListQuery) ([]*entity.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.List")
	defer span.End()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list", time.Since(start)) }()

	clause, args, err := repo.queryBuilder.BuildListClause(q)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, selectArticles+" "+clause, args...)
	if err != nil {
		metrics.RecordDBError("list")
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 16)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return articles, nil
}

// Count returns the number of stored articles.
func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepo.Count")
	defer span.End()

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
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("apply", time.Since(start))
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
		return fmt.Errorf("Apply: BeginTx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range changes {
		if err = repo.applyOne(ctx, tx, c); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Apply: Commit: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) applyOne(ctx context.Context, tx *sql.Tx, c repository.Change) error {
	a := c.Article
	var (
		res sql.Result
		err error
	)
	switch c.Op {
	case repository.OpCreate:
		res, err = tx.ExecContext(ctx,
			`INSERT INTO articles (title, body, timestamp) VALUES (?, ?, ?)`,
			a.Title, a.Body, a.Timestamp.UnixNano())
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert: LastInsertId: %w", err)
		}
		a.ID = id
		return nil
	case repository.OpUpdate:
		res, err = tx.ExecContext(ctx,
			`UPDATE articles SET title = ?, body = ?, timestamp = ? WHERE id = ?`,
			a.Title, a.Body, a.Timestamp.UnixNano(), a.ID)
	case repository.OpDelete:
		res, err = tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, a.ID)
	default:
		return fmt.Errorf("unsupported op %s: %w", c.Op, entity.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: RowsAffected: %w", c.Op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s article %d: %w", c.Op, a.ID, entity.ErrNotFound)
	}
	return nil
}

package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simple-cms/internal/common/sorting"
	"simple-cms/internal/domain/entity"
	"simple-cms/internal/repository"
)

// Input carries the client-writable fields of an article.
type Input struct {
	Title string
	Body  string
}

// ListInput describes a list request. Sort is the raw sort expression;
// Offset and Limit apply only when set.
type ListInput struct {
	Sort   string
	Offset *int
	Limit  *int
}

// PatchFunc transforms the current writable fields into their patched form.
type PatchFunc func(current Input) (Input, error)

// Service provides article management use cases.
// Every write goes through a repository.Session so that timestamps are
// stamped immediately before the commit.
type Service struct {
	Repo repository.ArticleRepository
	// Now is the commit clock; nil means time.Now.
	Now func() time.Time
}

func (s *Service) session() *repository.Session {
	return repository.NewSession(s.Repo, s.Now)
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// List returns articles ordered by in.Sort, then windowed by in.Offset and
// in.Limit. A blank sort keeps storage order. Unknown or malformed sort
// fields fail with ErrInvalidSort before storage is queried.
func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.Article, error) {
	keys, err := sorting.Parse(in.Sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSort, err)
	}
	if _, err := repository.ArticleSortSchema.Resolve(keys); err != nil {
		return nil, fmt.Errorf("%w: %w (sortable: %s)", ErrInvalidSort, err,
			strings.Join(repository.ArticleSortSchema.Names(), ", "))
	}

	articles, err := s.Repo.List(ctx, repository.ArticleListQuery{
		Sort:   keys,
		Offset: in.Offset,
		Limit:  in.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Count returns the total number of stored articles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Create validates and stores a new article. The returned article carries
// the storage-assigned ID and the commit timestamp.
func (s *Service) Create(ctx context.Context, in Input) (*entity.Article, error) {
	art := &entity.Article{Title: in.Title, Body: in.Body}
	if err := art.Validate(); err != nil {
		return nil, err
	}

	sess := s.session()
	sess.Create(art)
	if err := sess.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update replaces the title and body of an existing article.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	return s.Patch(ctx, id, func(Input) (Input, error) { return in, nil })
}

// Patch applies fn to the current writable fields of an article, validates
// the result and stores it. Nothing is written when fn or validation fails,
// or when the result equals the stored title and body; the timestamp then
// keeps its previous value.
func (s *Service) Patch(ctx context.Context, id int64, fn PatchFunc) error {
	art, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	patched, err := fn(Input{Title: art.Title, Body: art.Body})
	if err != nil {
		if errors.Is(err, entity.ErrValidationFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	next := *art
	next.Title, next.Body = patched.Title, patched.Body
	if err := next.Validate(); err != nil {
		return err
	}
	if next.Title == art.Title && next.Body == art.Body {
		return nil
	}

	sess := s.session()
	sess.Update(&next)
	return s.commit(ctx, sess, "update article")
}

// Delete removes an existing article.
func (s *Service) Delete(ctx context.Context, id int64) error {
	art, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	sess := s.session()
	sess.Delete(art)
	return s.commit(ctx, sess, "delete article")
}

// commit maps a row that vanished between read and write to ErrArticleNotFound.
func (s *Service) commit(ctx context.Context, sess *repository.Session, op string) error {
	if err := sess.Commit(ctx); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

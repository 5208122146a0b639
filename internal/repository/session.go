package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simple-cms/internal/domain/entity"
)

// ErrStorageWrite wraps any failure returned by the store while committing.
var ErrStorageWrite = errors.New("storage write failed")

// Session is the unit of work for one request. Writes are staged with Create,
// Update and Delete and reach storage only on Commit. A Session is not safe for
// concurrent use and must not outlive its request.
type Session struct {
	repo    ArticleRepository
	now     func() time.Time
	pending []Change
}

// NewSession starts an empty unit of work. A nil clock means time.Now.
func NewSession(repo ArticleRepository, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{repo: repo, now: now}
}

// Create stages an insert.
func (s *Session) Create(a *entity.Article) {
	s.pending = append(s.pending, Change{Op: OpCreate, Article: a})
}

// Update stages a write of a previously fetched article.
func (s *Session) Update(a *entity.Article) {
	s.pending = append(s.pending, Change{Op: OpUpdate, Article: a})
}

// Delete stages removal of a previously fetched article.
func (s *Session) Delete(a *entity.Article) {
	s.pending = append(s.pending, Change{Op: OpDelete, Article: a})
}

// Commit stamps every created or updated entity with one instant and then
// flushes the change set. The pending set is cleared whatever the outcome.
// Storage failures are returned wrapped in ErrStorageWrite; a write that hit a
// vanished row is returned as entity.ErrNotFound. Nothing is retried.
func (s *Session) Commit(ctx context.Context) error {
	changes := s.pending
	s.pending = nil
	if len(changes) == 0 {
		return nil
	}

	for _, c := range changes {
		if c.Article == nil {
			return fmt.Errorf("commit: %s without article: %w", c.Op, entity.ErrInvalidInput)
		}
		if c.Op != OpCreate && c.Article.ID <= 0 {
			return fmt.Errorf("commit: %s of unsaved article: %w", c.Op, entity.ErrInvalidInput)
		}
	}

	now := s.now()
	for _, c := range changes {
		if c.Op == OpCreate || c.Op == OpUpdate {
			entity.Stamp(c.Article, now)
		}
	}

	if err := s.repo.Apply(ctx, changes); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("commit: %w", err)
		}
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

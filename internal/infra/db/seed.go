package db

import (
	"context"
	"fmt"
	"time"

	"simple-cms/internal/domain/entity"
	"simple-cms/internal/repository"
)

// SampleArticles returns fresh copies of the demo articles.
func SampleArticles() []*entity.Article {
	return []*entity.Article{
		{Title: "Article 1", Body: "Article body 3"},
		{Title: "Article 1", Body: "Article body 2"},
		{Title: "Article 2", Body: "Article body 1"},
	}
}

// Seed stores the sample articles in one commit. Unless force is set it does
// nothing when articles already exist. It returns the number inserted.
func Seed(ctx context.Context, repo repository.ArticleRepository, now func() time.Time, force bool) (int, error) {
	if !force {
		n, err := repo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
		if n > 0 {
			return 0, nil
		}
	}

	session := repository.NewSession(repo, now)
	articles := SampleArticles()
	for _, a := range articles {
		session.Create(a)
	}
	if err := session.Commit(ctx); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	return len(articles), nil
}

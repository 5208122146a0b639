package article_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"simple-cms/internal/domain/entity"
	"simple-cms/internal/repository"
	artUC "simple-cms/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ ArticleRepository
type stubRepo struct {
	data    map[int64]*entity.Article
	order   []int64
	nextID  int64
	err     error // 強制的にエラーを返したいとき用
	applied int
}

func newStub(articles ...entity.Article) *stubRepo {
	s := &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
	for i := range articles {
		a := articles[i]
		a.ID = s.nextID
		s.nextID++
		s.data[a.ID] = &a
		s.order = append(s.order, a.ID)
	}
	return s
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *stubRepo) List(_ context.Context, q repository.ArticleListQuery) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Article, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.data[id]
		out = append(out, &cp)
	}
	if err := repository.ArticleSortSchema.SortSlice(out, q.Sort); err != nil {
		return nil, err
	}
	if q.Offset != nil {
		out = out[min(*q.Offset, len(out)):]
	}
	if q.Limit != nil {
		out = out[:min(*q.Limit, len(out))]
	}
	return out, nil
}

func (s *stubRepo) Count(context.Context) (int64, error) {
	return int64(len(s.data)), s.err
}

func (s *stubRepo) Apply(_ context.Context, changes []repository.Change) error {
	s.applied++
	if s.err != nil {
		return s.err
	}
	for _, c := range changes {
		switch c.Op {
		case repository.OpCreate:
			c.Article.ID = s.nextID
			s.nextID++
			cp := *c.Article
			s.data[cp.ID] = &cp
			s.order = append(s.order, cp.ID)
		case repository.OpUpdate:
			if _, ok := s.data[c.Article.ID]; !ok {
				return entity.ErrNotFound
			}
			cp := *c.Article
			s.data[cp.ID] = &cp
		case repository.OpDelete:
			if _, ok := s.data[c.Article.ID]; !ok {
				return entity.ErrNotFound
			}
			delete(s.data, c.Article.ID)
			for i, id := range s.order {
				if id == c.Article.ID {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		}
	}
	return nil
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func seeded() *stubRepo {
	return newStub(
		entity.Article{Title: "Article 1", Body: "Article body 3", Timestamp: t0},
		entity.Article{Title: "Article 1", Body: "Article body 2", Timestamp: t0.Add(time.Hour)},
		entity.Article{Title: "Article 2", Body: "Article body 1", Timestamp: t0.Add(2 * time.Hour)},
	)
}

func intPtr(v int) *int { return &v }

func ids(arts []*entity.Article) []int64 {
	out := []int64{}
	for _, a := range arts {
		out = append(out, a.ID)
	}
	return out
}

/* ───────── Get ───────── */

func TestService_Get(t *testing.T) {
	svc := artUC.Service{Repo: seeded()}

	got, err := svc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.Body != "Article body 2" {
		t.Fatalf("Body = %q", got.Body)
	}

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("missing id err=%v, want ErrArticleNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, artUC.ErrInvalidArticleID) {
		t.Fatalf("zero id err=%v, want ErrInvalidArticleID", err)
	}
}

/* ───────── List ───────── */

func TestService_List(t *testing.T) {
	tests := []struct {
		name string
		in   artUC.ListInput
		want []int64
	}{
		{name: "natural order", in: artUC.ListInput{}, want: []int64{1, 2, 3}},
		{name: "blank sort", in: artUC.ListInput{Sort: "   "}, want: []int64{1, 2, 3}},
		{name: "title then timestamp desc", in: artUC.ListInput{Sort: "title,timestamp desc"}, want: []int64{2, 1, 3}},
		{name: "single key", in: artUC.ListInput{Sort: "body"}, want: []int64{3, 2, 1}},
		{name: "whitespace around entries", in: artUC.ListInput{Sort: " title , body desc "}, want: []int64{1, 2, 3}},
		{name: "offset only", in: artUC.ListInput{Offset: intPtr(1)}, want: []int64{2, 3}},
		{name: "limit only", in: artUC.ListInput{Limit: intPtr(1)}, want: []int64{1}},
		{name: "offset and limit", in: artUC.ListInput{Sort: "body", Offset: intPtr(1), Limit: intPtr(1)}, want: []int64{2}},
		{name: "limit zero", in: artUC.ListInput{Limit: intPtr(0)}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := artUC.Service{Repo: seeded()}
			got, err := svc.List(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("List err=%v", err)
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_List_InvalidSort(t *testing.T) {
	for _, sort := range []string{"author", "title,", "title DESC", "title desc,bogus desc"} {
		t.Run(sort, func(t *testing.T) {
			svc := artUC.Service{Repo: seeded()}
			_, err := svc.List(context.Background(), artUC.ListInput{Sort: sort})
			if !errors.Is(err, artUC.ErrInvalidSort) {
				t.Fatalf("err=%v, want ErrInvalidSort", err)
			}
		})
	}
}

func TestService_List_UnknownFieldNamesSortable(t *testing.T) {
	svc := artUC.Service{Repo: seeded()}
	_, err := svc.List(context.Background(), artUC.ListInput{Sort: "author"})
	if err == nil || !strings.Contains(err.Error(), "sortable: body, id, timestamp, title") {
		t.Fatalf("err=%v, want sortable field list", err)
	}
}

/* ───────── Create ───────── */

func TestService_Create_StampsAndAssignsID(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := seeded()
	// サブマイクロ秒は保存前に切り捨てられる
	svc := artUC.Service{Repo: repo, Now: func() time.Time { return now.Add(999 * time.Nanosecond) }}

	got, err := svc.Create(context.Background(), artUC.Input{Title: "new", Body: "text"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if got.ID != 4 {
		t.Fatalf("ID = %d, want 4", got.ID)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("Timestamp = %v, want %v", got.Timestamp, now)
	}
	if !repo.data[4].Timestamp.Equal(got.Timestamp) {
		t.Fatalf("stored Timestamp = %v, returned %v", repo.data[4].Timestamp, got.Timestamp)
	}
	if repo.data[4].Title != "new" {
		t.Fatalf("stored title = %q", repo.data[4].Title)
	}
}

func TestService_Create_TitleLength(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "255 chars", title: strings.Repeat("a", 255)},
		{name: "256 chars", title: strings.Repeat("a", 256), wantErr: true},
		{name: "255 multibyte chars", title: strings.Repeat("記", 255)},
		{name: "blank", title: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seeded()
			svc := artUC.Service{Repo: repo}
			_, err := svc.Create(context.Background(), artUC.Input{Title: tt.title, Body: "b"})
			if tt.wantErr {
				if !errors.Is(err, entity.ErrValidationFailed) {
					t.Fatalf("err=%v, want ErrValidationFailed", err)
				}
				if repo.applied != 0 {
					t.Fatalf("invalid article must not reach storage")
				}
				return
			}
			if err != nil {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestService_Create_StorageFailure(t *testing.T) {
	repo := seeded()
	repo.err = errors.New("disk full")
	svc := artUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), artUC.Input{Title: "t", Body: "b"})
	if !errors.Is(err, repository.ErrStorageWrite) {
		t.Fatalf("err=%v, want ErrStorageWrite", err)
	}
}

/* ───────── Update / Patch ───────── */

func TestService_Update(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := seeded()
	svc := artUC.Service{Repo: repo, Now: func() time.Time { return now }}

	if err := svc.Update(context.Background(), 1, artUC.Input{Title: "T", Body: "B"}); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	want := &entity.Article{ID: 1, Title: "T", Body: "B", Timestamp: now}
	if diff := cmp.Diff(want, repo.data[1]); diff != "" {
		t.Fatalf("stored mismatch (-want +got):\n%s", diff)
	}

	if err := svc.Update(context.Background(), 42, artUC.Input{Title: "T", Body: "B"}); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("missing id err=%v, want ErrArticleNotFound", err)
	}
}

func TestService_Update_UnchangedKeepsTimestamp(t *testing.T) {
	repo := seeded()
	before := *repo.data[2]
	svc := artUC.Service{Repo: repo, Now: func() time.Time { return t0.Add(48 * time.Hour) }}

	err := svc.Update(context.Background(), 2, artUC.Input{Title: before.Title, Body: before.Body})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if repo.applied != 0 {
		t.Fatalf("Apply called %d times for an unchanged article", repo.applied)
	}
	if diff := cmp.Diff(&before, repo.data[2]); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
}

func TestService_Patch_NoopOperations(t *testing.T) {
	repo := seeded()
	before := *repo.data[1]
	svc := artUC.Service{Repo: repo}

	// test 操作のように値を書き換えないパッチ
	err := svc.Patch(context.Background(), 1, func(in artUC.Input) (artUC.Input, error) {
		return in, nil
	})
	if err != nil {
		t.Fatalf("Patch err=%v", err)
	}
	if repo.applied != 0 {
		t.Fatalf("Apply called %d times", repo.applied)
	}
	if !repo.data[1].Timestamp.Equal(before.Timestamp) {
		t.Fatalf("Timestamp = %v, want %v", repo.data[1].Timestamp, before.Timestamp)
	}
}

func TestService_Patch_InvalidLeavesRecordUnchanged(t *testing.T) {
	repo := seeded()
	before := *repo.data[3]
	svc := artUC.Service{Repo: repo}

	err := svc.Patch(context.Background(), 3, func(in artUC.Input) (artUC.Input, error) {
		in.Title = strings.Repeat("x", 256)
		return in, nil
	})
	if !errors.Is(err, entity.ErrValidationFailed) {
		t.Fatalf("err=%v, want ErrValidationFailed", err)
	}
	if diff := cmp.Diff(&before, repo.data[3]); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
	if repo.applied != 0 {
		t.Fatalf("Apply called %d times", repo.applied)
	}
}

func TestService_Patch_FuncError(t *testing.T) {
	svc := artUC.Service{Repo: seeded()}

	err := svc.Patch(context.Background(), 1, func(artUC.Input) (artUC.Input, error) {
		return artUC.Input{}, errors.New("path /author does not exist")
	})
	if !errors.Is(err, artUC.ErrInvalidPatch) {
		t.Fatalf("err=%v, want ErrInvalidPatch", err)
	}
}

func TestService_Patch_KeepsUntouchedFields(t *testing.T) {
	repo := seeded()
	svc := artUC.Service{Repo: repo}

	err := svc.Patch(context.Background(), 2, func(in artUC.Input) (artUC.Input, error) {
		in.Body = "rewritten"
		return in, nil
	})
	if err != nil {
		t.Fatalf("Patch err=%v", err)
	}
	if repo.data[2].Title != "Article 1" || repo.data[2].Body != "rewritten" {
		t.Fatalf("stored = %+v", repo.data[2])
	}
}

/* ───────── Delete ───────── */

func TestService_Delete(t *testing.T) {
	repo := seeded()
	svc := artUC.Service{Repo: repo}

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if _, err := svc.Get(context.Background(), 2); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("after delete err=%v, want ErrArticleNotFound", err)
	}
	if err := svc.Delete(context.Background(), 2); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("second delete err=%v, want ErrArticleNotFound", err)
	}
}

func TestService_Count(t *testing.T) {
	svc := artUC.Service{Repo: seeded()}
	n, err := svc.Count(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

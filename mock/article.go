package mock

import (
	"context"

	"github.com/fwojciec/docscrape"
)

// Compile-time interface verification.
var (
	_ docscrape.ArticleService = (*ArticleService)(nil)
	_ docscrape.ArticleStore   = (*ArticleStore)(nil)
	_ docscrape.HTMLRenderer   = (*HTMLRenderer)(nil)
)

// ArticleService is a mock implementation of docscrape.ArticleService.
type ArticleService struct {
	CreateArticleFn          func(ctx context.Context, article *docscrape.ArticleRecord) error
	FindArticleByIDFn        func(ctx context.Context, id string) (*docscrape.ArticleRecord, error)
	FindArticlesFn           func(ctx context.Context, filter docscrape.ArticleFilter) ([]*docscrape.ArticleRecord, error)
	DeleteArticlesBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *docscrape.ArticleRecord) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*docscrape.ArticleRecord, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter docscrape.ArticleFilter) ([]*docscrape.ArticleRecord, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticlesBySource(ctx context.Context, sourceID string) error {
	return s.DeleteArticlesBySourceFn(ctx, sourceID)
}

// ArticleStore is a mock implementation of docscrape.ArticleStore.
type ArticleStore struct {
	SaveFn   func(ctx context.Context, article *docscrape.ArticleRecord) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArticleStore) Save(ctx context.Context, article *docscrape.ArticleRecord) error {
	return s.SaveFn(ctx, article)
}

func (s *ArticleStore) Commit() error {
	return s.CommitFn()
}

func (s *ArticleStore) Abort() error {
	return s.AbortFn()
}

// HTMLRenderer is a mock implementation of docscrape.HTMLRenderer.
type HTMLRenderer struct {
	RenderHTMLFn func(markdown string) (string, error)
}

func (r *HTMLRenderer) RenderHTML(markdown string) (string, error) {
	return r.RenderHTMLFn(markdown)
}

package mock

import (
	"context"

	"github.com/fwojciec/docscrape"
)

var _ docscrape.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of docscrape.SourceService.
type SourceService struct {
	CreateSourceFn   func(ctx context.Context, source *docscrape.Source) error
	FindSourceByIDFn func(ctx context.Context, id string) (*docscrape.Source, error)
	FindSourcesFn    func(ctx context.Context, filter docscrape.SourceFilter) ([]*docscrape.Source, error)
	UpdateSourceFn   func(ctx context.Context, id string, upd docscrape.SourceUpdate) (*docscrape.Source, error)
	DeleteSourceFn   func(ctx context.Context, id string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *docscrape.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*docscrape.Source, error) {
	return s.FindSourceByIDFn(ctx, id)
}

func (s *SourceService) FindSources(ctx context.Context, filter docscrape.SourceFilter) ([]*docscrape.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) UpdateSource(ctx context.Context, id string, upd docscrape.SourceUpdate) (*docscrape.Source, error) {
	return s.UpdateSourceFn(ctx, id, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	return s.DeleteSourceFn(ctx, id)
}

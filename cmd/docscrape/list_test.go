package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docscrape"
	main "github.com/fwojciec/docscrape/cmd/docscrape"
	"github.com/fwojciec/docscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sources with platform and article count", func(t *testing.T) {
		t.Parallel()

		sources := &mock.SourceService{
			FindSourcesFn: func(context.Context, docscrape.SourceFilter) ([]*docscrape.Source, error) {
				return []*docscrape.Source{
					{ID: "s1", Name: "isams-help", Platform: "zendesk", EntryURL: "https://help.example.com/hc/en-gb"},
					{ID: "s2", Name: "odoo", Platform: "odoo", EntryURL: "https://www.odoo.com/documentation/18.0/"},
				}, nil
			},
		}
		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, f docscrape.ArticleFilter) ([]*docscrape.ArticleRecord, error) {
				if *f.SourceID == "s1" {
					return make([]*docscrape.ArticleRecord, 3), nil
				}
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Sources: sources, Articles: articles}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"isams-help  zendesk  https://help.example.com/hc/en-gb  3 articles\n"+
				"odoo  odoo  https://www.odoo.com/documentation/18.0/  0 articles\n",
			stdout.String())
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		sources := &mock.SourceService{
			FindSourcesFn: func(context.Context, docscrape.SourceFilter) ([]*docscrape.Source, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Sources: sources}

		require.NoError(t, (&main.ListCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "No sources found")
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()

		sources := &mock.SourceService{
			FindSourcesFn: func(context.Context, docscrape.SourceFilter) ([]*docscrape.Source, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Sources: sources}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk I/O error")
	})
}

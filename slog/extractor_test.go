package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/mock"
	dsslog "github.com/fwojciec/docscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	page := &docscrape.Page{URL: "https://example.com/docs/a", HTML: "<html></html>"}
	profile := &docscrape.Profile{Name: "mkdocs"}

	t.Run("logs title and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractFn: func(*docscrape.Page, *docscrape.Profile) (*docscrape.ArticleRecord, error) {
				return &docscrape.ArticleRecord{Title: "Intro", Body: "Hello\n\n"}, nil
			},
		}

		got, err := dsslog.NewLoggingExtractor(inner, logger).Extract(page, profile)

		require.NoError(t, err)
		assert.Equal(t, "Intro", got.Title)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "profile=mkdocs")
		assert.Contains(t, output, "title=Intro")
		assert.Contains(t, output, "bytes=7")
	})

	t.Run("warns on missing content root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractFn: func(*docscrape.Page, *docscrape.Profile) (*docscrape.ArticleRecord, error) {
				return &docscrape.ArticleRecord{Diagnostic: docscrape.NoContentDiagnostic}, nil
			},
		}

		_, err := dsslog.NewLoggingExtractor(inner, logger).Extract(page, profile)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "diagnostic=")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractFn: func(*docscrape.Page, *docscrape.Profile) (*docscrape.ArticleRecord, error) {
				return nil, errors.New("parse failed")
			},
		}

		_, err := dsslog.NewLoggingExtractor(inner, logger).Extract(page, profile)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `err="parse failed"`)
	})
}

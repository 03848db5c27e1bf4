package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docscrape"
)

var _ docscrape.ArticleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArticleExtractor and logs every extraction.
// Pages without a content root are logged at warn level.
type LoggingExtractor struct {
	next   docscrape.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docscrape.ArticleExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(page *docscrape.Page, profile *docscrape.Profile) (article *docscrape.ArticleRecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", page.URL,
			"profile", profile.Name,
			"duration", time.Since(begin),
		}
		level := slog.LevelInfo
		switch {
		case err != nil:
			attrs = append(attrs, "err", err)
			level = slog.LevelError
		case article.Diagnostic != "":
			attrs = append(attrs, "diagnostic", article.Diagnostic)
			level = slog.LevelWarn
		default:
			attrs = append(attrs, "title", article.Title, "bytes", len(article.Body))
		}
		e.logger.Log(context.Background(), level, "extract", attrs...)
	}(time.Now())
	return e.next.Extract(page, profile)
}

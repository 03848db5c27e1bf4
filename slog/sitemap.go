package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docscrape"
)

var _ docscrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging. A failed or
// empty sitemap is logged at warn level since the crawl then relies on
// link discovery alone.
type LoggingSitemapService struct {
	next   docscrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next docscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docscrape.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", baseURL,
			"urls", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
		}
		level := slog.LevelInfo
		if err != nil {
			attrs = append(attrs, "err", err)
			level = slog.LevelWarn
		} else if len(urls) == 0 {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "sitemap", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

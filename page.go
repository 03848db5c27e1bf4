package docscrape

import "context"

// Page is a fetched page as handed over by a Fetcher.
type Page struct {
	// URL is the resolved final URL, after redirects.
	URL  string
	HTML string
}

// CrawlProgress reports progress while a site is crawled.
type CrawlProgress struct {
	URL       string
	Completed int
	Pending   int
	Error     error
}

// CrawlProgressFunc is called after each page is processed.
type CrawlProgressFunc func(CrawlProgress)

// ArticleStore persists articles as files with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ArticleStore interface {
	Save(ctx context.Context, article *ArticleRecord) error
	Commit() error
	Abort() error
}

// Exporter writes the assembled export document.
type Exporter interface {
	Export(ctx context.Context, name string, articles []*ArticleRecord) error
}

// HTMLRenderer turns a Markdown document into HTML.
type HTMLRenderer interface {
	RenderHTML(markdown string) (string, error)
}

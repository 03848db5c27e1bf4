package mock

import "github.com/fwojciec/docscrape"

// Compile-time interface verification.
var (
	_ docscrape.ArticleExtractor = (*ArticleExtractor)(nil)
	_ docscrape.LinkDiscoverer   = (*LinkDiscoverer)(nil)
	_ docscrape.ContentLocator   = (*ContentLocator)(nil)
)

// ArticleExtractor is a mock implementation of docscrape.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(page *docscrape.Page, profile *docscrape.Profile) (*docscrape.ArticleRecord, error)
}

func (e *ArticleExtractor) Extract(page *docscrape.Page, profile *docscrape.Profile) (*docscrape.ArticleRecord, error) {
	return e.ExtractFn(page, profile)
}

// LinkDiscoverer is a mock implementation of docscrape.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(page *docscrape.Page, scope docscrape.Scope, profile *docscrape.Profile) ([]string, error)
}

func (d *LinkDiscoverer) DiscoverLinks(page *docscrape.Page, scope docscrape.Scope, profile *docscrape.Profile) ([]string, error) {
	return d.DiscoverLinksFn(page, scope, profile)
}

// ContentLocator is a mock implementation of docscrape.ContentLocator.
type ContentLocator struct {
	LocateFn func(html string) (*docscrape.LocateResult, error)
}

func (l *ContentLocator) Locate(html string) (*docscrape.LocateResult, error) {
	return l.LocateFn(html)
}

package docscrape

// ArticleExtractor turns one page into an article record. Extraction is a
// pure function of the page and the profile; it performs no I/O.
type ArticleExtractor interface {
	// Extract returns the article for the page. A page without a content
	// root yields a record with an empty body and a diagnostic, not an
	// error.
	Extract(page *Page, profile *Profile) (*ArticleRecord, error)
}

// LinkDiscoverer finds the in-scope pages a page links to.
type LinkDiscoverer interface {
	// DiscoverLinks returns normalized, deduplicated URLs inside scope, in
	// document order, excluding the page itself.
	DiscoverLinks(page *Page, scope Scope, profile *Profile) ([]string, error)
}

// LocateResult holds the main content located in an HTML page.
type LocateResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML with boilerplate removed.
	ContentHTML string
}

// ContentLocator finds the main content of pages whose profile names no
// content root selectors.
type ContentLocator interface {
	Locate(html string) (*LocateResult, error)
}

package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
)

// Ensure Engine implements the extraction interfaces at compile time.
var (
	_ docscrape.ArticleExtractor = (*Engine)(nil)
	_ docscrape.LinkDiscoverer   = (*Engine)(nil)
)

// Engine turns fetched pages into article records and discovers the links
// to crawl next.
type Engine struct {
	converter docscrape.Converter
	locator   docscrape.ContentLocator
}

// Option configures an Engine.
type Option func(*Engine)

// WithConverter sets the converter used for tables and as the fallback
// when no blocks are classified under a non-empty content root.
func WithConverter(c docscrape.Converter) Option {
	return func(e *Engine) {
		e.converter = c
	}
}

// WithLocator sets the locator used for profiles without content roots.
func WithLocator(l docscrape.ContentLocator) Option {
	return func(e *Engine) {
		e.locator = l
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the page and returns its article record.
func (e *Engine) Extract(page *docscrape.Page, p *docscrape.Profile) (*docscrape.ArticleRecord, error) {
	doc, err := parse(page.HTML)
	if err != nil {
		return nil, err
	}
	return e.extract(doc, page.HTML, page.URL, p), nil
}

// DiscoverLinks parses the page and returns its in-scope links.
func (e *Engine) DiscoverLinks(page *docscrape.Page, scope docscrape.Scope, p *docscrape.Profile) ([]string, error) {
	doc, err := parse(page.HTML)
	if err != nil {
		return nil, err
	}
	return DiscoverLinks(doc, page.URL, scope, p)
}

// Extract builds the article record for a parsed page using only the
// profile's selectors.
func Extract(doc *goquery.Document, pageURL string, p *docscrape.Profile) *docscrape.ArticleRecord {
	return (&Engine{}).extract(doc, "", pageURL, p)
}

func (e *Engine) extract(doc *goquery.Document, rawHTML, pageURL string, p *docscrape.Profile) *docscrape.ArticleRecord {
	root, locatedTitle := e.contentRoot(doc, rawHTML, p)

	title := ResolveTitle(doc, p)
	if title == "" {
		title = locatedTitle
	}
	if title == "" {
		title = docscrape.TitleFromURL(pageURL)
	}
	if title == "" {
		title = "Untitled"
	}

	article := &docscrape.ArticleRecord{
		Platform:     p.Name,
		Hierarchy:    ResolveHierarchy(doc, pageURL, title, p),
		Title:        title,
		URL:          pageURL,
		RelatedLinks: RelatedLinks(doc, p),
	}

	if root == nil || root.Length() == 0 {
		article.Diagnostic = docscrape.NoContentDiagnostic
		return article
	}

	blocks := Linearize(root, NewClassifier(p, e.converter))
	article.Body = docscrape.Render(docscrape.Pair(blocks, p.PairWindow))

	if article.Body == "" && e.converter != nil && docscrape.Normalize(root.Text()) != "" {
		if raw, err := goquery.OuterHtml(root); err == nil {
			if md, err := e.converter.Convert(raw); err == nil && strings.TrimSpace(md) != "" {
				article.Body = strings.TrimSpace(md) + "\n\n"
			}
		}
	}

	return article
}

// contentRoot returns the first match of the profile's content roots. A
// profile without content roots falls back to the locator, which also
// supplies a title from page metadata.
func (e *Engine) contentRoot(doc *goquery.Document, rawHTML string, p *docscrape.Profile) (*goquery.Selection, string) {
	for _, sel := range p.ContentRoots {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s, ""
		}
	}
	if len(p.ContentRoots) > 0 {
		return nil, ""
	}

	body := doc.Find("body").First()
	if e.locator == nil {
		return body, ""
	}
	if rawHTML == "" {
		h, err := doc.Html()
		if err != nil {
			return body, ""
		}
		rawHTML = h
	}
	result, err := e.locator.Locate(rawHTML)
	if err != nil || strings.TrimSpace(result.ContentHTML) == "" {
		return body, ""
	}
	located, err := parse(result.ContentHTML)
	if err != nil {
		return body, result.Title
	}
	return located.Find("body").First(), result.Title
}

// LocatorChain tries each locator in order and returns the first result
// with non-empty content.
type LocatorChain []docscrape.ContentLocator

var _ docscrape.ContentLocator = LocatorChain(nil)

// Locate implements docscrape.ContentLocator.
func (c LocatorChain) Locate(rawHTML string) (*docscrape.LocateResult, error) {
	var lastErr error
	for _, l := range c {
		result, err := l.Locate(rawHTML)
		if err != nil {
			lastErr = err
			continue
		}
		if result != nil && strings.TrimSpace(result.ContentHTML) != "" {
			return result, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, docscrape.Errorf(docscrape.ENOTFOUND, "no main content located")
}

func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

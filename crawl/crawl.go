// Package crawl sequences page fetching, extraction and link discovery
// over a bounded, path-scoped frontier.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/docscrape"
)

// DefaultMaxPages bounds a crawl when Crawler.MaxPages is unset.
const DefaultMaxPages = 1000

// Crawler walks a documentation site one page at a time. Every page is
// fetched once; profiles decide whether it becomes an article, whether its
// links are followed, or both.
type Crawler struct {
	Fetcher   docscrape.Fetcher
	Extractor docscrape.ArticleExtractor
	Links     docscrape.LinkDiscoverer

	// Sitemaps, when set, seeds the frontier with the in-scope URLs of
	// the site's sitemap at depth 1.
	Sitemaps docscrape.SitemapService

	// RateLimiter, when set, spaces requests per host.
	RateLimiter docscrape.DomainLimiter

	// Filter, when set, drops discovered URLs that do not match.
	Filter *docscrape.URLFilter

	MaxPages    int
	RetryDelays []time.Duration
	OnRetry     RetryFunc

	// Now stamps FetchedAt; defaults to time.Now.
	Now func() time.Time
}

// Failure is a page that could not be fetched or extracted.
type Failure struct {
	URL string
	Err error
}

// Result holds the outcome of a crawl.
type Result struct {
	// Records are the extracted articles in crawl order.
	Records  []*docscrape.ArticleRecord
	Failures []Failure
	// Duplicates counts pages whose body repeated an earlier article.
	Duplicates int
	// Truncated is set when MaxPages stopped the crawl early.
	Truncated bool
}

// Bytes returns the total body size of the records.
func (r *Result) Bytes() int {
	n := 0
	for _, a := range r.Records {
		n += len(a.Body)
	}
	return n
}

// Empty returns the number of records without a content root.
func (r *Result) Empty() int {
	n := 0
	for _, a := range r.Records {
		if a.Diagnostic != "" {
			n++
		}
	}
	return n
}

// Crawl crawls the site below entryURL with profile p.
//
// Per-page failures are recorded in the result and never end the crawl.
// Crawl only returns an error for an invalid entry URL or when ctx is
// canceled; in the latter case the partial result is returned as well.
func (c *Crawler) Crawl(ctx context.Context, entryURL string, p *docscrape.Profile, progress docscrape.CrawlProgressFunc) (*Result, error) {
	entry, err := docscrape.NormalizeURL(p.EntryURL(entryURL))
	if err != nil {
		return nil, err
	}
	scope, err := docscrape.NewScope(entry, p.ScopeRoot)
	if err != nil {
		return nil, err
	}

	state := docscrape.NewFrontierState()
	state.Push(entry, 0)

	if c.Sitemaps != nil {
		c.seed(ctx, state, entry, scope)
	}

	return c.Resume(ctx, state, scope, p, progress)
}

// seed pushes in-scope sitemap URLs at depth 1. Sitemap errors are
// ignored; link discovery still covers the site.
func (c *Crawler) seed(ctx context.Context, state *docscrape.FrontierState, entry string, scope docscrape.Scope) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, entry, c.Filter)
	if err != nil {
		return
	}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || !scope.Contains(u) {
			continue
		}
		if normalized, err := docscrape.NormalizeURL(raw); err == nil {
			state.Push(normalized, 1)
		}
	}
}

// Resume continues a crawl from an explicit frontier state until the state
// has no pending entries, MaxPages pages were processed or ctx is canceled.
// The state is updated in place and can be resumed again.
func (c *Crawler) Resume(ctx context.Context, state *docscrape.FrontierState, scope docscrape.Scope, p *docscrape.Profile, progress docscrape.CrawlProgressFunc) (*Result, error) {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(state, DefaultExpectedURLs, DefaultFalsePositiveRate)
	hashes := make(map[string]bool)
	result := &Result{}
	processed := 0

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if processed >= maxPages {
			result.Truncated = true
			break
		}

		entry, _ := frontier.Pop()
		processed++

		err := c.visit(ctx, frontier, entry, scope, p, hashes, result)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failures = append(result.Failures, Failure{URL: entry.URL, Err: err})
		}

		if progress != nil {
			progress(docscrape.CrawlProgress{
				URL:       entry.URL,
				Completed: processed,
				Pending:   frontier.Len(),
				Error:     err,
			})
		}
	}

	return result, nil
}

// visit fetches one page, queues its links and extracts its article.
// Page roles are decided on the requested URL; links resolve against the
// final URL.
func (c *Crawler) visit(ctx context.Context, frontier *Frontier, entry docscrape.FrontierEntry, scope docscrape.Scope, p *docscrape.Profile, hashes map[string]bool, result *Result) error {
	page, err := c.fetch(ctx, entry.URL)
	if err != nil {
		return err
	}

	if final, err := docscrape.NormalizeURL(page.URL); err == nil && final != entry.URL {
		u, _ := url.Parse(final)
		if u == nil || !scope.Contains(u) {
			return docscrape.Errorf(docscrape.EFETCH, "redirected outside scope to %s", page.URL)
		}
		frontier.MarkVisited(final)
	}

	if p.Expands(entry.URL, entry.Depth) {
		links, err := c.Links.DiscoverLinks(page, scope, p)
		if err != nil {
			return err
		}
		for _, link := range links {
			if c.Filter.Match(link) {
				frontier.Push(link, entry.Depth+1)
			}
		}
	}

	if !p.Extracts(entry.URL) {
		return nil
	}

	article, err := c.Extractor.Extract(page, p)
	if err != nil {
		return err
	}

	if article.Body != "" {
		hash := ComputeHash(article.Body)
		if hashes[hash] {
			result.Duplicates++
			return nil
		}
		hashes[hash] = true
		article.ContentHash = hash
	}
	article.Position = len(result.Records)
	article.FetchedAt = c.now()
	result.Records = append(result.Records, article)
	return nil
}

func (c *Crawler) fetch(ctx context.Context, rawURL string) (*docscrape.Page, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, docscrape.Errorf(docscrape.EINVALID, "invalid URL %q", rawURL)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, c.OnRetry, delays)
}

func (c *Crawler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

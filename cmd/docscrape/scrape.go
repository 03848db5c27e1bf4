package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/crawl"
	"github.com/fwojciec/docscrape/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	filter, err := docscrape.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	entry, err := docscrape.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	httpFetcher := deps.NewHTTPFetcher(c.Timeout)
	defer httpFetcher.Close()

	profile, err := c.resolveProfile(deps, entry, httpFetcher)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if c.MaxDepth >= 0 {
		p := *profile
		p.MaxDepth = c.MaxDepth
		profile = &p
	}
	fmt.Fprintf(deps.Stdout, "Platform: %s\n", profile.Name)

	fetcher, err := c.selectFetcher(deps, entry, profile, httpFetcher)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	if fetcher != httpFetcher {
		defer fetcher.Close()
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   deps.Extractor,
		Links:       deps.Links,
		Filter:      filter,
		MaxPages:    c.MaxPages,
		RetryDelays: deps.RetryDelays,
		OnRetry: func(url string, attempt int, err error) {
			deps.Logger.Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
		},
	}
	if c.Sitemap {
		crawler.Sitemaps = deps.Sitemaps
	}
	if c.RPS > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(c.RPS)
	}

	progress := func(p docscrape.CrawlProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(p.URL, 80), errorText(p.Error))
		}
	}

	result, err := crawler.Crawl(deps.Ctx, entry, profile, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", errorText(err))
		return err
	}
	if len(result.Records) == 0 {
		err := docscrape.Errorf(docscrape.ENOTFOUND, "no articles extracted from %s", entry)
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	name := c.Name
	if name == "" {
		name = exportName(entry)
	}

	if err := c.write(deps, name, result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.Save {
		if err := saveArticles(deps.Ctx, deps, name, entry, profile.Name, result.Records); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved source %q\n", name)
	}

	fmt.Fprintf(deps.Stdout, "  %s\n", crawl.Summary(result))
	return nil
}

// resolveProfile returns the --platform profile, or detects one from the
// entry page. A failed entry fetch still detects by host.
func (c *ScrapeCmd) resolveProfile(deps *Dependencies, entry string, fetcher docscrape.Fetcher) (*docscrape.Profile, error) {
	if c.Platform != "" {
		p := deps.Registry.Get(c.Platform)
		if p == nil {
			return nil, docscrape.Errorf(docscrape.ENOTFOUND, "unknown platform %q. Use 'docscrape platforms' to see available platforms", c.Platform)
		}
		return p, nil
	}

	var html string
	if page, err := fetcher.Fetch(deps.Ctx, entry); err == nil {
		html = page.HTML
	} else {
		deps.Logger.Debug("entry page fetch failed", "url", entry, "err", err)
	}

	p := deps.Registry.Detect(entry, html)
	if p == nil {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "no platform profile matched %s. Use --platform", entry)
	}
	return p, nil
}

// selectFetcher picks the browser when asked for or when the profile needs
// one, probes when --probe is set, and uses plain HTTP otherwise.
func (c *ScrapeCmd) selectFetcher(deps *Dependencies, entry string, p *docscrape.Profile, httpFetcher docscrape.Fetcher) (docscrape.Fetcher, error) {
	newBrowser := func() (docscrape.Fetcher, error) {
		return deps.NewBrowserFetcher(p, BrowserOptions{Timeout: c.Timeout, UserDataDir: c.UserDataDir, Stealth: c.Stealth})
	}

	switch {
	case c.Browser || p.Browser || c.UserDataDir != "" || c.Stealth:
		return newBrowser()
	case c.Probe:
		return ProbeFetcher(deps.Ctx, entry, httpFetcher, newBrowser, deps.Extractor, p)
	default:
		return httpFetcher, nil
	}
}

func (c *ScrapeCmd) write(deps *Dependencies, name string, records []*docscrape.ArticleRecord) error {
	var opts []fs.ExporterOption
	if c.Format == "html" {
		opts = append(opts, fs.WithHTMLRenderer(deps.Renderer))
	}
	exporter := fs.NewExporter(c.Output, opts...)
	if err := exporter.Export(deps.Ctx, name, records); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", exporter.Path(name))

	if !c.Files {
		return nil
	}
	store := fs.NewFileStore(c.Output, fs.Slug(name))
	if err := SaveFiles(deps.Ctx, store, records); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d files to %s\n", len(records), store.Dir())
	return nil
}

// SaveFiles writes every record to store and commits. Nothing is published
// when a record fails to save.
func SaveFiles(ctx context.Context, store docscrape.ArticleStore, records []*docscrape.ArticleRecord) error {
	for _, a := range records {
		if err := store.Save(ctx, a); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}

// saveArticles replaces the stored source called name with the given
// records.
func saveArticles(ctx context.Context, deps *Dependencies, name, entry, platform string, records []*docscrape.ArticleRecord) error {
	existing, err := deps.Sources.FindSources(ctx, docscrape.SourceFilter{Name: &name})
	if err != nil {
		return err
	}
	for _, s := range existing {
		if err := deps.Sources.DeleteSource(ctx, s.ID); err != nil {
			return err
		}
	}

	source := &docscrape.Source{Name: name, EntryURL: entry, Platform: platform}
	if err := deps.Sources.CreateSource(ctx, source); err != nil {
		return err
	}
	for _, a := range records {
		a.ID = ""
		a.SourceID = source.ID
		if err := deps.Articles.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("storing %s: %w", a.URL, err)
		}
	}
	return nil
}

// exportName derives a name from the entry URL host, e.g.
// "help.example.com" for https://help.example.com/hc/en-gb.
func exportName(entry string) string {
	u, err := url.Parse(entry)
	if err != nil || u.Host == "" {
		return "docs"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

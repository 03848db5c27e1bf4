package main

import (
	"context"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/crawl"
)

// ProbeFetcher fetches the entry page over plain HTTP and with a browser
// and returns the fetcher that the rest of the crawl should use.
//
// Decision flow:
//   - HTTP fetch fails → browser
//   - browser cannot start or fetch → HTTP
//   - browser page yields substantially more article text → browser
//   - otherwise → HTTP, and the browser is closed
//
// An error is returned only when HTTP failed and the browser could not
// start.
func ProbeFetcher(
	ctx context.Context,
	entryURL string,
	httpFetcher docscrape.Fetcher,
	newBrowser func() (docscrape.Fetcher, error),
	extractor docscrape.ArticleExtractor,
	p *docscrape.Profile,
) (docscrape.Fetcher, error) {
	httpPage, httpErr := httpFetcher.Fetch(ctx, entryURL)

	browser, err := newBrowser()
	if err != nil {
		if httpErr != nil {
			return nil, err
		}
		return httpFetcher, nil
	}
	if httpErr != nil {
		return browser, nil
	}

	browserPage, err := browser.Fetch(ctx, entryURL)
	if err != nil {
		_ = browser.Close()
		return httpFetcher, nil
	}

	if crawl.ContentDiffers(httpPage, browserPage, extractor, p) {
		return browser, nil
	}
	_ = browser.Close()
	return httpFetcher, nil
}

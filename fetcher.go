package docscrape

import "context"

// Fetcher retrieves pages from URLs.
// Implementations may drive a browser to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns the page with its final URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

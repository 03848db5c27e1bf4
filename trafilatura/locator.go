// Package trafilatura locates the main content of arbitrary pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docscrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Locator implements docscrape.ContentLocator at compile time.
var _ docscrape.ContentLocator = (*Locator)(nil)

// Locator finds the article body of a page that no profile describes.
type Locator struct {
	opts trafilatura.Options
}

// NewLocator creates a new Locator. Fallback extractors are enabled and
// comment sections are dropped.
func NewLocator() *Locator {
	return &Locator{opts: trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}}
}

// Locate returns the main content of rawHTML as HTML together with the
// title from the page metadata. It returns ENOTFOUND when nothing
// article-like is found.
func (l *Locator) Locate(rawHTML string) (*docscrape.LocateResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docscrape.Errorf(docscrape.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), l.opts)
	if err != nil {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "trafilatura: no content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &docscrape.LocateResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}

// Package readability locates the main content of arbitrary pages with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/docscrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Locator implements docscrape.ContentLocator at compile time.
var _ docscrape.ContentLocator = (*Locator)(nil)

// Locator finds the article body of a page with the Readability algorithm.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the main content of rawHTML as HTML. Pages Readability
// does not consider readable yield ENOTFOUND.
func (l *Locator) Locate(rawHTML string) (*docscrape.LocateResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docscrape.Errorf(docscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "readability: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "readability: no content")
	}

	return &docscrape.LocateResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}

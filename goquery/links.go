package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
)

// DiscoverLinks returns the in-scope pages the page links to. Anchors are
// read from the first of the profile's link containers present on the
// page, or from the whole page. Links are resolved against pageURL,
// stripped of fragments and kept in document order without duplicates.
// The page itself is never returned.
func DiscoverLinks(doc *goquery.Document, pageURL string, scope docscrape.Scope, p *docscrape.Profile) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "invalid base URL: %v", err)
	}
	self, err := docscrape.NormalizeURL(pageURL)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{self: true}
	var links []string

	linkContainer(doc, p).Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, ok := docscrape.ResolveLink(base, href)
		if !ok {
			return
		}
		link := u.String()
		if seen[link] {
			return
		}
		if !scope.Contains(u) || !matchesAny(u.Path, p.LinkPatterns) || excluded(link, p.LinkExclude) {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}

func linkContainer(doc *goquery.Document, p *docscrape.Profile) *goquery.Selection {
	for _, sel := range p.LinkContainers {
		if s := doc.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return doc.Selection
}

// matchesAny reports whether s contains one of the patterns. No patterns
// matches everything.
func matchesAny(s string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func excluded(link string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(link, p) {
			return true
		}
	}
	return false
}

package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
)

// Detector identifies the publishing platform of a page. It checks, in
// order of reliability, the page host, the meta generator tag and the
// platform's structural markers.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the first profile that claims the page, or nil.
func (d *Detector) Detect(doc *goquery.Document, pageURL string, profiles []*docscrape.Profile) *docscrape.Profile {
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		for _, p := range profiles {
			if p.MatchesHost(u.Host) {
				return p
			}
		}
	}

	if generator := d.generator(doc); generator != "" {
		for _, p := range profiles {
			for _, g := range p.Generators {
				if strings.Contains(generator, strings.ToLower(g)) {
					return p
				}
			}
		}
	}

	for _, p := range profiles {
		for _, marker := range p.Markers {
			if d.hasSelector(doc, marker) {
				return p
			}
		}
	}

	return nil
}

// generator returns the lower-cased content of the meta generator tag.
func (d *Detector) generator(doc *goquery.Document) string {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	return generator
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

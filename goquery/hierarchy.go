package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
)

// ResolveHierarchy returns the page's ancestor categories. Breadcrumb
// profiles read the breadcrumb trail, dropping empty crumbs, links, noise
// labels and the page's own title; the URL path is used when that leaves
// nothing or the profile derives hierarchy from paths.
func ResolveHierarchy(doc *goquery.Document, pageURL, title string, p *docscrape.Profile) docscrape.HierarchyPath {
	if p.Hierarchy != docscrape.HierarchyFromPath && p.BreadcrumbSelector != "" {
		if crumbs := breadcrumbs(doc, title, p); len(crumbs) > 0 {
			return crumbs
		}
	}
	return docscrape.HierarchyFromURL(pageURL, p.PathStrip)
}

func breadcrumbs(doc *goquery.Document, title string, p *docscrape.Profile) docscrape.HierarchyPath {
	var crumbs docscrape.HierarchyPath
	doc.Find(p.BreadcrumbSelector).Each(func(_ int, s *goquery.Selection) {
		t := docscrape.Normalize(s.Text())
		switch {
		case t == "":
		case strings.HasPrefix(t, "http://"), strings.HasPrefix(t, "https://"):
		case strings.EqualFold(t, title):
		case containsFold(p.BreadcrumbNoise, t):
		case len(crumbs) > 0 && crumbs[len(crumbs)-1] == t:
		default:
			crumbs = append(crumbs, t)
		}
	})
	return crumbs
}

// ResolveTitle returns the text of the first title selector that matches,
// with heading trims removed, or an empty string.
func ResolveTitle(doc *goquery.Document, p *docscrape.Profile) string {
	for _, sel := range p.TitleSelectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		t := s.Text()
		for _, trim := range p.HeadingTrim {
			t = strings.ReplaceAll(t, trim, "")
		}
		if t = docscrape.Normalize(t); t != "" {
			return t
		}
	}
	return ""
}

// RelatedLinks returns the text of the profile's related-article links.
func RelatedLinks(doc *goquery.Document, p *docscrape.Profile) []string {
	if p.RelatedSelector == "" {
		return nil
	}
	var related []string
	seen := make(map[string]bool)
	doc.Find(p.RelatedSelector).Each(func(_ int, s *goquery.Selection) {
		t := docscrape.Normalize(s.Text())
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		related = append(related, t)
	})
	return related
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

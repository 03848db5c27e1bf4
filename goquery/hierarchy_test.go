package goquery_test

import (
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/goquery"
	"github.com/stretchr/testify/assert"
)

func TestResolveHierarchy(t *testing.T) {
	t.Parallel()

	breadcrumbProfile := func(t *testing.T) *docscrape.Profile {
		return testProfile(t, func(p *docscrape.Profile) {
			p.BreadcrumbSelector = ".crumbs a"
			p.BreadcrumbNoise = []string{"Home"}
		})
	}

	t.Run("reads breadcrumb trail", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<nav class="crumbs">
<a href="/">Home</a>
<a href="/guides">Guides</a>
<a href="/guides/setup">  Setup </a>
<a href="/guides/setup/install">Install</a>
</nav>`)

		got := goquery.ResolveHierarchy(doc, "https://example.com/guides/setup/install", "Install", breadcrumbProfile(t))

		assert.Equal(t, docscrape.HierarchyPath{"Guides", "Setup"}, got)
	})

	t.Run("drops empty, URL and repeated crumbs", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<div class="crumbs">
<a href="/a"></a>
<a href="/b">https://example.com/b</a>
<a href="/c">Admin</a>
<a href="/c">Admin</a>
</div>`)

		got := goquery.ResolveHierarchy(doc, "https://example.com/c/page", "Page", breadcrumbProfile(t))

		assert.Equal(t, docscrape.HierarchyPath{"Admin"}, got)
	})

	t.Run("falls back to URL without breadcrumbs", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>No crumbs here</p>`)

		got := goquery.ResolveHierarchy(doc, "https://example.com/docs/18.0/applications/sales/crm.html", "CRM", breadcrumbProfile(t))

		assert.Equal(t, docscrape.HierarchyPath{"Applications", "Sales"}, got)
	})

	t.Run("path profile ignores breadcrumbs", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.BreadcrumbSelector = ".crumbs a"
			p.Hierarchy = docscrape.HierarchyFromPath
			p.PathStrip = []string{"kb"}
		})
		doc := parseDoc(t, `<div class="crumbs"><a href="/x">Crumb</a></div>`)

		got := goquery.ResolveHierarchy(doc, "https://example.com/kb/billing/invoices/refunds", "Refunds", p)

		assert.Equal(t, docscrape.HierarchyPath{"Billing", "Invoices"}, got)
	})

	t.Run("unknown when nothing remains", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>x</p>`)

		got := goquery.ResolveHierarchy(doc, "https://example.com/page", "Page", testProfile(t, nil))

		assert.True(t, got.IsUnknown())
	})
}

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	t.Run("first matching selector wins", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.TitleSelectors = []string{".missing", ".title", "h1"}
		})
		doc := parseDoc(t, `<h1>Heading</h1><div class="title"> Article   Title </div>`)

		assert.Equal(t, "Article Title", goquery.ResolveTitle(doc, p))
	})

	t.Run("removes heading trims", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.HeadingTrim = []string{"#"}
		})
		doc := parseDoc(t, `<h1>Intro#</h1>`)

		assert.Equal(t, "Intro", goquery.ResolveTitle(doc, p))
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>no heading</p>`)

		assert.Empty(t, goquery.ResolveTitle(doc, testProfile(t, nil)))
	})
}

func TestRelatedLinks(t *testing.T) {
	t.Parallel()

	t.Run("collects unique link texts", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.RelatedSelector = ".related a"
		})
		doc := parseDoc(t, `<ul class="related">
<li><a href="/1">First</a></li>
<li><a href="/2">Second</a></li>
<li><a href="/1">First</a></li>
<li><a href="/3"> </a></li>
</ul>`)

		assert.Equal(t, []string{"First", "Second"}, goquery.RelatedLinks(doc, p))
	})

	t.Run("nil without selector", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<div class="related"><a href="/1">First</a></div>`)

		assert.Nil(t, goquery.RelatedLinks(doc, testProfile(t, nil)))
	})
}

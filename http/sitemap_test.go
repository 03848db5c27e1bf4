package http_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/docscrape"
	dshttp "github.com/fwojciec/docscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// urlset builds a sitemap listing paths under {{BASE}}.
func urlset(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, p := range paths {
		b.WriteString("<url><loc>{{BASE}}" + p + "</loc></url>")
	}
	b.WriteString("</urlset>")
	return b.String()
}

func sitemapIndex(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, p := range paths {
		b.WriteString("<sitemap><loc>{{BASE}}" + p + "</loc></sitemap>")
	}
	b.WriteString("</sitemapindex>")
	return b.String()
}

func gzipped(s string) string {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(s))
	_ = gz.Close()
	return buf.String()
}

// siteServer serves files by path. {{BASE}} in a file is replaced with the
// server URL before gzip files are compressed.
func siteServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = strings.ReplaceAll(body, "{{BASE}}", srv.URL)
		if strings.HasPrefix(body, "gzip:") {
			body = gzipped(strings.TrimPrefix(body, "gzip:"))
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		files  map[string]string
		base   string
		filter *docscrape.URLFilter
		want   []string
	}{
		{
			name: "robots directive",
			files: map[string]string{
				"/robots.txt": "User-agent: *\nDisallow: /private/\nsitemap: {{BASE}}/map.xml\n",
				"/map.xml":    urlset("/docs/intro", "/docs/guide"),
			},
			want: []string{"/docs/intro", "/docs/guide"},
		},
		{
			name: "several robots directives in order",
			files: map[string]string{
				"/robots.txt": "Sitemap: {{BASE}}/one.xml\nSitemap: {{BASE}}/two.xml\n",
				"/one.xml":    urlset("/a"),
				"/two.xml":    urlset("/b"),
			},
			want: []string{"/a", "/b"},
		},
		{
			name:  "root sitemap without robots",
			files: map[string]string{"/sitemap.xml": urlset("/page")},
			want:  []string{"/page"},
		},
		{
			name:  "sitemap index at conventional location",
			files: map[string]string{"/sitemap_index.xml": urlset("/indexed")},
			want:  []string{"/indexed"},
		},
		{
			name:  "sitemap next to the docs",
			files: map[string]string{"/docs/sitemap.xml": urlset("/docs/a")},
			base:  "/docs/",
			want:  []string{"/docs/a"},
		},
		{
			name: "nested index is walked breadth first",
			files: map[string]string{
				"/sitemap.xml": sitemapIndex("/s-docs.xml", "/s-api.xml"),
				"/s-docs.xml":  urlset("/docs/intro"),
				"/s-api.xml":   urlset("/api/ref"),
			},
			want: []string{"/docs/intro", "/api/ref"},
		},
		{
			name: "index cycle is read once",
			files: map[string]string{
				"/sitemap.xml": sitemapIndex("/loop.xml"),
				"/loop.xml":    sitemapIndex("/sitemap.xml", "/leaf.xml"),
				"/leaf.xml":    urlset("/leaf"),
			},
			want: []string{"/leaf"},
		},
		{
			name: "gzip detected from content",
			files: map[string]string{
				"/robots.txt": "Sitemap: {{BASE}}/pages\n",
				"/pages":      "gzip:" + urlset("/zipped"),
			},
			want: []string{"/zipped"},
		},
		{
			name:  "scoped to base directory",
			files: map[string]string{"/sitemap.xml": urlset("/docs", "/docs/intro", "/documentation/x", "/blog/p")},
			base:  "/docs/",
			want:  []string{"/docs", "/docs/intro"},
		},
		{
			name:  "fragments collapse to one url",
			files: map[string]string{"/sitemap.xml": urlset("/a", "/b", "/a#part")},
			want:  []string{"/a", "/b"},
		},
		{
			name:  "include filter",
			files: map[string]string{"/sitemap.xml": urlset("/docs/intro", "/blog/p", "/docs/guide")},
			filter: &docscrape.URLFilter{
				Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			},
			want: []string{"/docs/intro", "/docs/guide"},
		},
		{
			name:  "exclude filter",
			files: map[string]string{"/sitemap.xml": urlset("/docs/intro", "/docs/internal/x")},
			filter: &docscrape.URLFilter{
				Exclude: []*regexp.Regexp{regexp.MustCompile(`/internal/`)},
			},
			want: []string{"/docs/intro"},
		},
		{
			name:  "no sitemap",
			files: map[string]string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := siteServer(t, tt.files)
			want := make([]string, len(tt.want))
			for i, p := range tt.want {
				want[i] = srv.URL + p
			}

			got, err := dshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+tt.base, tt.filter)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSitemapService_DiscoverURLs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		base  string
		code  string
	}{
		{
			name: "invalid base URL",
			base: "not a url",
			code: docscrape.EINVALID,
		},
		{
			name:  "malformed sitemap",
			files: map[string]string{"/sitemap.xml": `<<not xml`},
			code:  docscrape.EINVALID,
		},
		{
			name:  "unexpected root element",
			files: map[string]string{"/sitemap.xml": `<rss><channel/></rss>`},
			code:  docscrape.EINVALID,
		},
		{
			name:  "listed sitemap missing",
			files: map[string]string{"/robots.txt": "Sitemap: {{BASE}}/gone.xml\n"},
			code:  docscrape.ENOTFOUND,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := siteServer(t, tt.files)
			base := tt.base
			if base == "" {
				base = srv.URL
			}

			_, err := dshttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), base, nil)

			assert.Equal(t, tt.code, docscrape.ErrorCode(err))
		})
	}

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		srv := siteServer(t, map[string]string{"/sitemap.xml": urlset("/a")})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := dshttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

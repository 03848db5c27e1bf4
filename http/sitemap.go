package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docscrape"
)

var _ docscrape.SitemapService = (*SitemapService)(nil)

// maxSitemaps bounds how many sitemap documents one discovery reads.
const maxSitemaps = 100

// gzipMagic starts every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps in
// document order, normalized and without duplicates. Only URLs below the
// directory of baseURL that pass filter are kept.
//
// Sitemaps come from the Sitemap directives of robots.txt. Without any,
// the conventional locations at the site root and next to baseURL are
// tried and missing ones are skipped. A site without a sitemap yields an
// empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docscrape.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, docscrape.Errorf(docscrape.EINVALID, "invalid base URL %q", baseURL)
	}

	listed, err := s.robotsSitemaps(ctx, base)
	if err != nil {
		return nil, err
	}

	walk := &sitemapWalk{
		svc:     s,
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
		dir:     scopeDir(base.Path),
		filter:  filter,
		urls:    []string{},
	}
	if len(listed) > 0 {
		walk.enqueue(listed, true)
	} else {
		walk.enqueue(fallbackSitemaps(base), false)
	}

	if err := walk.run(ctx); err != nil {
		return nil, err
	}
	return walk.urls, nil
}

// sitemapWalk is a breadth-first walk over sitemaps and sitemap indexes.
type sitemapWalk struct {
	svc     *SitemapService
	queue   []queued
	visited map[string]bool
	seen    map[string]bool
	dir     string
	filter  *docscrape.URLFilter
	urls    []string
}

type queued struct {
	url string
	// required sitemaps fail the walk when missing.
	required bool
}

func (w *sitemapWalk) enqueue(urls []string, required bool) {
	for _, u := range urls {
		w.queue = append(w.queue, queued{url: u, required: required})
	}
}

func (w *sitemapWalk) run(ctx context.Context) error {
	for len(w.queue) > 0 && len(w.visited) < maxSitemaps {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := w.queue[0]
		w.queue = w.queue[1:]
		if w.visited[next.url] {
			continue
		}
		w.visited[next.url] = true

		root, err := w.svc.readSitemap(ctx, next.url)
		if err != nil {
			if !next.required && docscrape.ErrorCode(err) == docscrape.ENOTFOUND {
				continue
			}
			return err
		}

		switch root.Tag {
		case "sitemapindex":
			w.enqueue(locs(root, "sitemap"), true)
		case "urlset":
			for _, loc := range locs(root, "url") {
				w.add(loc)
			}
		default:
			return docscrape.Errorf(docscrape.EINVALID, "sitemap %s: unexpected root <%s>", next.url, root.Tag)
		}
	}
	return nil
}

func (w *sitemapWalk) add(loc string) {
	u, err := docscrape.NormalizeURL(loc)
	if err != nil || w.seen[u] {
		return
	}
	w.seen[u] = true
	if inDir(u, w.dir) && w.filter.Match(u) {
		w.urls = append(w.urls, u)
	}
}

// scopeDir returns the directory a base path scopes sitemap URLs to:
// /docs and /docs/ both give /docs, the root gives "".
func scopeDir(p string) string {
	return strings.TrimSuffix(p, "/")
}

// inDir reports whether rawURL's path is dir or below it. /docs does not
// contain /documentation.
func inDir(rawURL, dir string) bool {
	if dir == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == dir || strings.HasPrefix(u.Path, dir+"/")
}

// fallbackSitemaps lists the conventional sitemap locations for base.
// Documentation hosted below a path often ships its own sitemap there.
func fallbackSitemaps(base *url.URL) []string {
	at := func(p string) string {
		return (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: p}).String()
	}
	out := []string{at("/sitemap.xml"), at("/sitemap_index.xml")}
	if dir := scopeDir(base.Path); dir != "" {
		out = append(out, at(path.Join(dir, "sitemap.xml")))
	}
	return out
}

// robotsSitemaps returns the Sitemap directives of the site's robots.txt.
// A missing or unreadable robots.txt yields none.
func (s *SitemapService) robotsSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	robots := (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/robots.txt"}).String()
	body, err := s.get(ctx, robots)
	if err != nil {
		return nil, ctx.Err()
	}
	defer body.Close()

	var out []string
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// readSitemap fetches and parses one sitemap document. Gzip is detected
// from the content rather than the file name.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	br := bufio.NewReader(body)
	var r io.Reader = br
	if head, _ := br.Peek(len(gzipMagic)); bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, docscrape.Errorf(docscrape.EINVALID, "sitemap %s: %v", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "sitemap %s: empty document", sitemapURL)
	}
	return root, nil
}

// locs returns the trimmed <loc> text of each child of root named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		if loc := el.SelectElement("loc"); loc != nil {
			if v := strings.TrimSpace(loc.Text()); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, docscrape.Errorf(docscrape.EINVALID, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, docscrape.Errorf(docscrape.EFETCH, "%s: %v", target, err)
	}
	if err := statusError(resp.StatusCode, target); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

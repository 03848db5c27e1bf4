package docscrape

import (
	"net/url"
	"strings"
)

// NormalizeURL returns the canonical form used for frontier deduplication:
// the fragment is removed, scheme and host are lower-cased and an empty
// path becomes "/".
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	return normalize(u).String(), nil
}

func normalize(u *url.URL) *url.URL {
	n := *u
	n.Fragment = ""
	n.RawFragment = ""
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = strings.ToLower(n.Host)
	if n.Path == "" && n.Opaque == "" {
		n.Path = "/"
	}
	return &n
}

// Scope bounds a crawl to one host and one path prefix.
type Scope struct {
	Host       string
	PathPrefix string
}

// NewScope returns the scope rooted at entryURL. A non-empty root replaces
// the entry path as the prefix, for sites whose articles live outside the
// section that links to them.
func NewScope(entryURL, root string) (Scope, error) {
	u, err := url.Parse(entryURL)
	if err != nil {
		return Scope{}, Errorf(EINVALID, "invalid URL %q: %v", entryURL, err)
	}
	if u.Host == "" {
		return Scope{}, Errorf(EINVALID, "URL %q has no host", entryURL)
	}
	prefix := u.Path
	if root != "" {
		prefix = root
	}
	if prefix == "" {
		prefix = "/"
	}
	return Scope{Host: strings.ToLower(u.Host), PathPrefix: prefix}, nil
}

// Contains reports whether u is on the scope's host and under its prefix.
func (s Scope) Contains(u *url.URL) bool {
	return strings.EqualFold(u.Host, s.Host) && strings.HasPrefix(u.Path, s.PathPrefix)
}

// ResolveLink resolves href against base and normalizes the result. It
// returns false for links that are not fetchable pages.
func ResolveLink(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	return normalize(resolved), true
}

func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

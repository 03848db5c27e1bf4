package docscrape

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownLevel is the hierarchy used when neither breadcrumbs nor the URL
// yield any category.
const UnknownLevel = "Unknown"

// HierarchyPath names the ancestor categories of a page, outermost first.
type HierarchyPath []string

// String joins the levels with " > ".
func (p HierarchyPath) String() string {
	return strings.Join(p, " > ")
}

// IsUnknown reports whether the path carries no real category.
func (p HierarchyPath) IsUnknown() bool {
	return len(p) == 0 || (len(p) == 1 && p[0] == UnknownLevel)
}

var versionSegment = regexp.MustCompile(`^v?\d+(\.\d+)*$`)

// documentExtensions are stripped from the terminal path segment.
var documentExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".php":  true,
	".aspx": true,
	".md":   true,
}

// HierarchyFromURL derives a hierarchy from the URL path. Segments up to
// and including the first version-like segment (such as "18.0") are
// dropped; without one, leading segments listed in strip are dropped. The
// last segment names the page itself and is not part of the hierarchy.
func HierarchyFromURL(rawURL string, strip []string) HierarchyPath {
	u, err := url.Parse(rawURL)
	if err != nil {
		return HierarchyPath{UnknownLevel}
	}

	segs := pathSegments(u.Path)
	if i := versionIndex(segs); i >= 0 {
		segs = segs[i+1:]
	} else {
		segs = trimLeading(segs, strip)
	}
	if len(segs) > 0 {
		segs = segs[:len(segs)-1]
	}

	levels := make(HierarchyPath, 0, len(segs))
	for _, seg := range segs {
		if name := Humanize(seg); name != "" {
			levels = append(levels, name)
		}
	}
	if len(levels) == 0 {
		return HierarchyPath{UnknownLevel}
	}
	return levels
}

// TitleFromURL returns the humanized terminal segment of the URL path, or
// an empty string when the path has no segments.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segs := pathSegments(u.Path)
	if len(segs) == 0 {
		return ""
	}
	return Humanize(segs[len(segs)-1])
}

// Humanize turns a URL path segment into a title: the document extension
// is dropped, separators become spaces and every word is title-cased.
func Humanize(seg string) string {
	if ext := path.Ext(seg); documentExtensions[strings.ToLower(ext)] {
		seg = strings.TrimSuffix(seg, ext)
	}
	seg = strings.NewReplacer("_", " ", "-", " ").Replace(seg)
	seg = Normalize(seg)
	if seg == "" {
		return ""
	}
	return cases.Title(language.Und).String(seg)
}

func pathSegments(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func versionIndex(segs []string) int {
	for i, s := range segs {
		if versionSegment.MatchString(s) {
			return i
		}
	}
	return -1
}

func trimLeading(segs, strip []string) []string {
	for len(segs) > 0 && containsFold(strip, segs[0]) {
		segs = segs[1:]
	}
	return segs
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

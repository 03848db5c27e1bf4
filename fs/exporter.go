package fs

import (
	"context"
	"html"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/docscrape"
)

// Ensure Exporter implements docscrape.Exporter at compile time.
var _ docscrape.Exporter = (*Exporter)(nil)

// Exporter writes the combined export document of a source to a single
// file in a directory. With a renderer set the document is written as an
// HTML page instead of Markdown.
type Exporter struct {
	dir      string
	renderer docscrape.HTMLRenderer
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithHTMLRenderer makes the exporter write HTML rendered by r.
func WithHTMLRenderer(r docscrape.HTMLRenderer) ExporterOption {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string, opts ...ExporterOption) *Exporter {
	e := &Exporter{dir: dir}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path returns the file an export named name is written to.
func (e *Exporter) Path(name string) string {
	ext := ".md"
	if e.renderer != nil {
		ext = ".html"
	}
	return filepath.Join(e.dir, Slug(name)+ext)
}

// Export writes the header and all articles in order. The file is written
// to a temporary name first and renamed into place.
func (e *Exporter) Export(ctx context.Context, name string, articles []*docscrape.ArticleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if Slug(name) == "" {
		return docscrape.Errorf(docscrape.EINVALID, "export name required")
	}

	doc := docscrape.FormatHeader(name, len(articles)) + docscrape.FormatArticles(articles)
	if e.renderer != nil {
		body, err := e.renderer.RenderHTML(doc)
		if err != nil {
			return err
		}
		doc = htmlPage(name, body)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return err
	}
	return writeFileAtomic(e.Path(name), []byte(doc))
}

func htmlPage(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Slug turns a source name into a file name: lower case letters and
// digits separated by single dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// Package goldmark renders export documents as sanitized HTML.
package goldmark

import (
	"bytes"
	"regexp"

	"github.com/fwojciec/docscrape"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Ensure Renderer implements docscrape.HTMLRenderer at compile time.
var _ docscrape.HTMLRenderer = (*Renderer)(nil)

// Renderer converts Markdown with GitHub extensions to HTML and passes the
// result through a user-content sanitizing policy. Scraped pages can carry
// raw HTML into article bodies.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#.-]+$`)).OnElements("code")
	policy.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Renderer{md: md, policy: policy}
}

// RenderHTML renders markdown to sanitized HTML.
func (r *Renderer) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", docscrape.Errorf(docscrape.EINTERNAL, "rendering markdown: %v", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

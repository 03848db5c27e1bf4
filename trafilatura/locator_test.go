package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		want    []string
		notWant []string
	}{
		{
			name: "docusaurus page",
			html: `<!DOCTYPE html>
<html>
<head><title>Introduction | My Project</title><meta property="og:title" content="Introduction"></head>
<body>
<nav class="navbar"><a href="/">My Project</a><a href="/docs">Docs</a><a href="/blog">Blog</a></nav>
<div class="sidebar"><ul><li><a href="/docs/intro">Introduction</a></li><li><a href="/docs/install">Installation</a></li></ul></div>
<main class="docMainContainer"><article>
<h1>Introduction</h1>
<p>Welcome to the documentation. This guide will help you get started.</p>
<h2>Prerequisites</h2>
<p>Before you begin, make sure you have Node.js installed.</p>
</article></main>
<footer class="footer"><p>Built with Docusaurus</p></footer>
</body>
</html>`,
			want:    []string{"Welcome to the documentation", "Prerequisites"},
			notWant: []string{"Built with Docusaurus"},
		},
		{
			name: "mkdocs page",
			html: `<!DOCTYPE html>
<html>
<head><title>Home - MkDocs Project</title></head>
<body>
<header><nav class="md-header"><a href=".">MkDocs Project</a></nav></header>
<nav class="md-nav"><ul><li><a href=".">Home</a></li><li><a href="getting-started/">Getting Started</a></li></ul></nav>
<main><article class="md-content">
<h1>Welcome to MkDocs</h1>
<p>For full documentation visit mkdocs.org.</p>
<h2>Commands</h2>
<ul><li><code>mkdocs new [dir-name]</code> - Create a new project.</li><li><code>mkdocs serve</code> - Start the live-reloading docs server.</li></ul>
</article></main>
<footer class="md-footer"><p>Made with MkDocs</p></footer>
</body>
</html>`,
			want: []string{"Welcome to MkDocs", "mkdocs new"},
		},
		{
			name: "help centre article with code",
			html: `<!DOCTYPE html>
<html>
<head><title>Exporting Reports</title></head>
<body>
<nav class="main-nav"><ul><li><a href="/">Home</a></li><li><a href="/hc">Help</a></li></ul></nav>
<article>
<h1>Exporting Reports</h1>
<p>Reports can be exported from the reporting module by any administrator.</p>
<pre><code class="language-sh">report export --format csv</code></pre>
</article>
<footer><p>Copyright 2024 Example Corp</p></footer>
</body>
</html>`,
			want:    []string{"exported from the reporting module", "report export --format csv"},
			notWant: []string{"main-nav", "Copyright 2024 Example Corp"},
		},
		{
			name: "minimal page",
			html: `<html><body><p>Simple content</p></body></html>`,
			want: []string{"Simple content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := trafilatura.NewLocator().Locate(tt.html)

			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, got.ContentHTML, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, got.ContentHTML, s)
			}
		})
	}

	t.Run("title from metadata", func(t *testing.T) {
		t.Parallel()

		got, err := trafilatura.NewLocator().Locate(`<html><head><title>Getting Started</title></head><body><main><h1>Getting Started</h1><p>This is the main content of the documentation page.</p></main></body></html>`)

		require.NoError(t, err)
		assert.NotEmpty(t, got.Title)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewLocator().Locate("")

		assert.Equal(t, docscrape.EINVALID, docscrape.ErrorCode(err))
	})
}

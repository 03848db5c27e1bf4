package goquery_test

import (
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func firstNode(t *testing.T, markup, selector string) *html.Node {
	t.Helper()
	s := bodyOf(t, markup).Find(selector).First()
	require.Equal(t, 1, s.Length(), "selector %q", selector)
	return s.Get(0)
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("generic wrapper is transparent", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<div class="content"><p>x</p></div>`, "div")

		d := c.Classify(n, nil)

		assert.Equal(t, goquery.Transparent, d.Action)
		assert.Empty(t, d.Blocks)
	})

	t.Run("wrapper matching a callout is not transparent", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.Callouts = []docscrape.CalloutRule{{Classes: []string{"tip"}, DefaultTitle: "Tip"}}
		})
		c := goquery.NewClassifier(p, nil)
		n := firstNode(t, `<div class="tip"><p>Use it.</p></div>`, "div")

		d := c.Classify(n, nil)

		require.Equal(t, goquery.Emit, d.Action)
		require.Len(t, d.Blocks, 1)
		assert.Equal(t, docscrape.KindCallout, d.Blocks[0].Kind)
		assert.Equal(t, "Tip", d.Blocks[0].Title)
		assert.Equal(t, "Use it.", d.Blocks[0].Text)
	})

	t.Run("noise class drops the node", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.NoiseClasses = []string{"toc"}
		})
		c := goquery.NewClassifier(p, nil)
		n := firstNode(t, `<ul class="toc"><li>a</li></ul>`, "ul")

		d := c.Classify(n, nil)

		assert.Equal(t, goquery.Drop, d.Action)
	})

	t.Run("noise ancestor drops the node", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.NoiseClasses = []string{"nav*"}
		})
		c := goquery.NewClassifier(p, nil)
		n := firstNode(t, `<div class="navbar"><p>Home</p></div>`, "p")

		d := c.Classify(n, []*html.Node{n.Parent})

		assert.Equal(t, goquery.Drop, d.Action)
	})

	t.Run("heading level follows tag", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<h4>Deep</h4>`, "h4")

		d := c.Classify(n, nil)

		require.Len(t, d.Blocks, 1)
		assert.Equal(t, docscrape.KindHeading, d.Blocks[0].Kind)
		assert.Equal(t, 4, d.Blocks[0].Level)
		assert.Equal(t, "Deep", d.Blocks[0].Text)
		assert.Same(t, n, d.Blocks[0].Origin)
	})

	t.Run("labels match case-insensitively with colon", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)

		for markup, want := range map[string]docscrape.LabelKind{
			`<p>prompt</p>`:                     docscrape.LabelPrompt,
			`<p>OUTPUT:</p>`:                    docscrape.LabelOutput,
			`<p><b>Output</b> :</p>`:            docscrape.LabelOutput,
			`<span class="label">Prompt</span>`: docscrape.LabelPrompt,
		} {
			n := firstNode(t, markup, "p, span")
			d := c.Classify(n, nil)
			require.Len(t, d.Blocks, 1, markup)
			assert.Equal(t, docscrape.KindLabel, d.Blocks[0].Kind, markup)
			assert.Equal(t, want, d.Blocks[0].Label, markup)
		}
	})

	t.Run("emphasized label", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<div><em>Output:</em></div><pre><code>42</code></pre>`, "em")

		d := c.Classify(n, nil)

		require.Equal(t, goquery.Emit, d.Action)
		require.Len(t, d.Blocks, 1)
		assert.Equal(t, docscrape.KindLabel, d.Blocks[0].Kind)
		assert.Equal(t, docscrape.LabelOutput, d.Blocks[0].Label)
	})

	t.Run("custom label vocabulary", func(t *testing.T) {
		t.Parallel()

		p := testProfile(t, func(p *docscrape.Profile) {
			p.PromptLabels = []string{"Request"}
			p.OutputLabels = []string{"Response"}
		})
		c := goquery.NewClassifier(p, nil)
		n := firstNode(t, `<p>Response:</p>`, "p")

		d := c.Classify(n, nil)

		require.Len(t, d.Blocks, 1)
		assert.Equal(t, docscrape.LabelOutput, d.Blocks[0].Label)
	})

	t.Run("inline tag that is not a label is skipped", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<span>just text</span>`, "span")

		d := c.Classify(n, nil)

		assert.Equal(t, goquery.Skip, d.Action)
	})

	t.Run("list items carry ordering", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<ol><li>a</li><li>b</li></ol>`, "ol")

		d := c.Classify(n, nil)

		require.Len(t, d.Blocks, 2)
		for i, b := range d.Blocks {
			assert.Equal(t, docscrape.KindListItem, b.Kind)
			assert.True(t, b.Ordered)
			assert.Equal(t, i+1, b.Index)
		}
	})

	t.Run("empty code block is kept", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<pre><code class="lang-sh"></code></pre>`, "pre")

		d := c.Classify(n, nil)

		require.Equal(t, goquery.Emit, d.Action)
		require.Len(t, d.Blocks, 1)
		assert.Equal(t, docscrape.KindCodeBlock, d.Blocks[0].Kind)
		assert.Equal(t, "sh", d.Blocks[0].Language)
		assert.Empty(t, d.Blocks[0].Code)
	})

	t.Run("empty quote is dropped", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(testProfile(t, nil), nil)
		n := firstNode(t, `<blockquote> </blockquote>`, "blockquote")

		d := c.Classify(n, nil)

		assert.Equal(t, goquery.Drop, d.Action)
	})
}

package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
	"golang.org/x/net/html"
)

// Action tells the linearizer what to do with a classified node.
type Action int

// Classification actions.
const (
	// Emit appends the decision's blocks and consumes the subtree.
	Emit Action = iota
	// Transparent descends into the node without consuming it.
	Transparent
	// Skip ignores the node itself; its descendants stay reachable.
	Skip
	// Drop consumes the subtree without emitting anything.
	Drop
)

// Decision is the classifier's verdict on one node.
type Decision struct {
	Action Action
	Blocks []docscrape.Block
}

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// containerTags may carry special-container classes without being generic
// wrappers themselves.
var containerTags = []string{"aside", "details", "figure"}

// Classifier decides the semantic kind of DOM nodes for one profile.
type Classifier struct {
	profile   *docscrape.Profile
	converter docscrape.Converter

	wrappers   map[string]bool
	labelTags  map[string]bool
	labels     map[string]docscrape.LabelKind
	candidates string

	// ignored nodes contribute no text.
	ignored nodeSet
}

// NewClassifier returns a classifier for the profile. The converter renders
// tables when the profile enables them and may be nil.
func NewClassifier(profile *docscrape.Profile, converter docscrape.Converter) *Classifier {
	c := &Classifier{
		profile:   profile,
		converter: converter,
		wrappers:  toSet(profile.WrapperTags),
		labelTags: toSet(profile.LabelTags),
		labels:    make(map[string]docscrape.LabelKind),
	}
	for _, l := range profile.PromptLabels {
		c.labels[strings.ToLower(l)] = docscrape.LabelPrompt
	}
	for _, l := range profile.OutputLabels {
		c.labels[strings.ToLower(l)] = docscrape.LabelOutput
	}

	tags := map[string]bool{
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"p": true, "ul": true, "ol": true, "pre": true, "blockquote": true, "table": true,
	}
	for _, t := range containerTags {
		tags[t] = true
	}
	for t := range c.wrappers {
		tags[t] = true
	}
	for t := range c.labelTags {
		tags[t] = true
	}
	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	sort.Strings(names)
	c.candidates = strings.Join(names, ",")

	return c
}

func (c *Classifier) withIgnored(ignored nodeSet) *Classifier {
	cp := *c
	cp.ignored = ignored
	return &cp
}

// Classify decides what n contributes. ancestors are n's element
// ancestors below the content root, nearest first. The first matching
// rule wins: noise, generic wrapper, special container, heading, label,
// paragraph, list, preformatted code, quote, table (converted, or one
// paragraph per row).
func (c *Classifier) Classify(n *html.Node, ancestors []*html.Node) Decision {
	if c.isNoise(n) {
		return Decision{Action: Drop}
	}
	for _, a := range ancestors {
		if c.isNoise(a) {
			return Decision{Action: Drop}
		}
	}

	tag := n.Data
	callout, isCallout := c.calloutRule(n)
	isCode := matchClass(n, c.profile.CodeContainers)

	if c.wrappers[tag] && !isCallout && !isCode {
		return Decision{Action: Transparent}
	}
	if isCallout {
		return c.emit(c.callout(n, callout))
	}
	if isCode {
		return c.emit(c.codeContainer(n)...)
	}

	if level, ok := headingLevels[tag]; ok {
		if level == 1 && c.profile.SkipTitle {
			return Decision{Action: Drop}
		}
		return c.emit(docscrape.Block{
			Kind:   docscrape.KindHeading,
			Level:  level + c.profile.HeadingOffset,
			Text:   c.headingText(n),
			Origin: n,
		})
	}

	if c.labelTags[tag] {
		if b, ok := c.label(n); ok {
			return c.emit(b)
		}
	}

	switch tag {
	case "p":
		return c.emit(docscrape.Block{Kind: docscrape.KindParagraph, Text: text(n, c.ignored), Origin: n})
	case "ul", "ol":
		return c.emit(c.listItems(n)...)
	case "pre":
		return c.emit(c.codeBlock(n, n))
	case "blockquote":
		return c.emit(docscrape.Block{Kind: docscrape.KindQuote, Text: text(n, c.ignored), Origin: n})
	case "table":
		if b, ok := c.table(n); ok {
			return c.emit(b)
		}
		return c.emit(c.tableRows(n)...)
	}

	return Decision{Action: Skip}
}

// emit drops empty blocks. A decision left with no blocks consumes the
// node silently.
func (c *Classifier) emit(blocks ...docscrape.Block) Decision {
	kept := blocks[:0]
	for _, b := range blocks {
		if !b.IsEmpty() {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		return Decision{Action: Drop}
	}
	return Decision{Action: Emit, Blocks: kept}
}

func (c *Classifier) isNoise(n *html.Node) bool {
	return matchClass(n, c.profile.NoiseClasses)
}

func (c *Classifier) calloutRule(n *html.Node) (docscrape.CalloutRule, bool) {
	for _, rule := range c.profile.Callouts {
		if matchClass(n, rule.Classes) {
			return rule, true
		}
	}
	return docscrape.CalloutRule{}, false
}

func (c *Classifier) callout(n *html.Node, rule docscrape.CalloutRule) docscrape.Block {
	sel := goquery.NewDocumentFromNode(n).Selection
	skip := c.ignored.clone()

	var title string
	if rule.Title != "" {
		if t := sel.Find(rule.Title).First(); t.Length() > 0 {
			title = text(t.Get(0), c.ignored)
			skip.addTree(t.Get(0))
		}
	}
	if title == "" {
		title = classTitle(n, rule)
	}

	var body string
	if rule.Body != "" {
		if b := sel.Find(rule.Body).First(); b.Length() > 0 {
			body = text(b.Get(0), c.ignored)
		}
	}
	if body == "" {
		body = text(n, skip)
	}

	return docscrape.Block{Kind: docscrape.KindCallout, Title: title, Text: body, Origin: n}
}

func classTitle(n *html.Node, rule docscrape.CalloutRule) string {
	for _, token := range classTokens(n) {
		if t, ok := rule.ClassTitles[token]; ok {
			return t
		}
	}
	if rule.DefaultTitle != "" {
		return rule.DefaultTitle
	}
	return "Note"
}

// codeContainer emits one code block per pre element inside a code
// container, or a single block when it has none.
func (c *Classifier) codeContainer(n *html.Node) []docscrape.Block {
	if n.Data == "pre" {
		return []docscrape.Block{c.codeBlock(n, n)}
	}

	sel := goquery.NewDocumentFromNode(n).Selection
	var blocks []docscrape.Block
	sel.Find("pre").Each(func(_ int, s *goquery.Selection) {
		pre := s.Get(0)
		if c.ignored.has(pre) || hasPreAncestor(pre, n) {
			return
		}
		blocks = append(blocks, c.codeBlock(pre, n))
	})
	if len(blocks) > 0 {
		return blocks
	}

	if code := sel.Find("code").First(); code.Length() > 0 {
		return []docscrape.Block{c.codeBlock(code.Get(0), n)}
	}
	return []docscrape.Block{c.codeBlock(n, n)}
}

func hasPreAncestor(n, stop *html.Node) bool {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "pre" {
			return true
		}
	}
	return false
}

// codeBlock builds a code block from the text of n. The language is taken
// from a nested code element, then from n and its ancestors up to origin.
func (c *Classifier) codeBlock(n, origin *html.Node) docscrape.Block {
	candidates := []*html.Node{}
	if code := firstChildElement(n, "code"); code != nil {
		candidates = append(candidates, code)
	}
	for p := n; p != nil; p = p.Parent {
		candidates = append(candidates, p)
		if p == origin {
			break
		}
	}

	return docscrape.Block{
		Kind:     docscrape.KindCodeBlock,
		Language: language(candidates...),
		Code:     codeText(n, c.ignored),
		Origin:   origin,
	}
}

func firstChildElement(n *html.Node, tag string) *html.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.Data == tag {
			return ch
		}
	}
	return nil
}

var languagePrefixes = []string{"language-", "lang-", "highlight-"}

// language returns the first language named by a data attribute or a
// language class token on the given nodes.
func language(nodes ...*html.Node) string {
	for _, n := range nodes {
		for _, key := range []string{"data-language", "data-lang"} {
			if v := strings.TrimSpace(attr(n, key)); v != "" {
				return v
			}
		}
		for _, token := range classTokens(n) {
			for _, prefix := range languagePrefixes {
				if lang, ok := strings.CutPrefix(token, prefix); ok && lang != "" && lang != "default" {
					return lang
				}
			}
		}
	}
	return ""
}

func (c *Classifier) headingText(n *html.Node) string {
	s := rawText(n, c.ignored, ' ')
	for _, trim := range c.profile.HeadingTrim {
		s = strings.ReplaceAll(s, trim, "")
	}
	return docscrape.Normalize(s)
}

// label matches text such as "Prompt" or "output:" against the profile's
// label vocabulary.
func (c *Classifier) label(n *html.Node) (docscrape.Block, bool) {
	t := text(n, c.ignored)
	word := strings.TrimSpace(strings.TrimSuffix(t, ":"))
	kind, ok := c.labels[strings.ToLower(word)]
	if !ok {
		return docscrape.Block{}, false
	}
	return docscrape.Block{Kind: docscrape.KindLabel, Label: kind, Text: t, Origin: n}, true
}

func (c *Classifier) listItems(n *html.Node) []docscrape.Block {
	ordered := n.Data == "ol"
	var items []docscrape.Block
	index := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" || c.ignored.has(li) {
			continue
		}
		t := text(li, c.ignored)
		if t == "" {
			continue
		}
		index++
		items = append(items, docscrape.Block{
			Kind:    docscrape.KindListItem,
			Ordered: ordered,
			Index:   index,
			Text:    t,
			Origin:  n,
		})
	}
	return items
}

func (c *Classifier) table(n *html.Node) (docscrape.Block, bool) {
	if !c.profile.Tables || c.converter == nil {
		return docscrape.Block{}, false
	}
	raw, err := goquery.OuterHtml(goquery.NewDocumentFromNode(n).Selection)
	if err != nil {
		return docscrape.Block{}, false
	}
	md, err := c.converter.Convert(raw)
	if err != nil {
		return docscrape.Block{}, false
	}
	return docscrape.Block{Kind: docscrape.KindTable, Text: strings.TrimSpace(md), Origin: n}, true
}

// tableRows renders a table that is not converted to Markdown as one
// paragraph per row, cells separated by " | ". Rows of nested tables
// belong to their own table.
func (c *Classifier) tableRows(n *html.Node) []docscrape.Block {
	var rows []docscrape.Block
	goquery.NewDocumentFromNode(n).Find("tr").Each(func(_ int, s *goquery.Selection) {
		tr := s.Get(0)
		if c.ignored.has(tr) || owningTable(tr) != n {
			return
		}
		var cells []string
		for cell := tr.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
				continue
			}
			if t := text(cell, c.ignored); t != "" {
				cells = append(cells, t)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, docscrape.Block{
				Kind:   docscrape.KindParagraph,
				Text:   strings.Join(cells, " | "),
				Origin: tr,
			})
		}
	})
	return rows
}

func owningTable(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "table" {
			return p
		}
	}
	return nil
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[strings.ToLower(s)] = true
	}
	return m
}

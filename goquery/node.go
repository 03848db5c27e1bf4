package goquery

import (
	"strings"

	"github.com/fwojciec/docscrape"
	"golang.org/x/net/html"
)

// nodeSet is an identity-keyed set of DOM nodes. Two structurally equal
// nodes are distinct members.
type nodeSet map[*html.Node]struct{}

func (s nodeSet) has(n *html.Node) bool {
	_, ok := s[n]
	return ok
}

// addTree adds n and all of its descendants.
func (s nodeSet) addTree(n *html.Node) {
	s[n] = struct{}{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.addTree(c)
	}
}

func (s nodeSet) clone() nodeSet {
	c := make(nodeSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// blockTags end a run of inline text. Their boundaries separate the words
// on either side even when the markup has no whitespace between them.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// rawText concatenates the text below n, skipping nodes in skip. Line
// breaks become newlines and block element boundaries become sep, written
// at most once in a row.
func rawText(n *html.Node, skip nodeSet, sep byte) string {
	var b strings.Builder
	separate := func() {
		if s := b.String(); s != "" && s[len(s)-1] != sep && s[len(s)-1] != '\n' {
			b.WriteByte(sep)
		}
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if skip.has(n) {
			return
		}
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteByte('\n')
				return
			}
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			separate()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			separate()
		}
	}
	walk(n)
	return b.String()
}

// text returns the normalized text below n.
func text(n *html.Node, skip nodeSet) string {
	return docscrape.Normalize(rawText(n, skip, ' '))
}

// codeText returns the text below n verbatim apart from line endings and
// surrounding blank lines.
func codeText(n *html.Node, skip nodeSet) string {
	s := strings.ReplaceAll(rawText(n, skip, '\n'), "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classTokens(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// matchClass reports whether any class token of n matches any pattern. A
// pattern ending in "*" matches tokens with that prefix.
func matchClass(n *html.Node, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	for _, token := range classTokens(n) {
		for _, p := range patterns {
			if prefix, ok := strings.CutSuffix(p, "*"); ok {
				if strings.HasPrefix(token, prefix) {
					return true
				}
			} else if token == p {
				return true
			}
		}
	}
	return false
}

// ancestors returns the element ancestors of n below root, nearest first.
func ancestors(n, root *html.Node) []*html.Node {
	var chain []*html.Node
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if p.Type == html.ElementNode {
			chain = append(chain, p)
		}
	}
	return chain
}

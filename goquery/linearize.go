package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docscrape"
)

// Linearize walks the candidate nodes below root in document order and
// returns the classified blocks. Each emitted node consumes its subtree,
// so no visible unit is rendered twice. Generic wrappers and skipped nodes
// are not consumed and their descendants are visited on their own.
//
// The tree is never modified: nodes matched by the profile's Remove
// selectors (and script, style and media elements) and subtrees with a
// noise class are ignored up front.
func Linearize(root *goquery.Selection, c *Classifier) []docscrape.Block {
	if root.Length() == 0 {
		return nil
	}
	rootNode := root.Get(0)

	ignored := ignoredNodes(root, c)
	c = c.withIgnored(ignored)
	consumed := ignored.clone()

	var blocks []docscrape.Block
	list := 0
	root.Find(c.candidates).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if consumed.has(n) {
			return
		}

		d := c.Classify(n, ancestors(n, rootNode))
		switch d.Action {
		case Transparent, Skip:
			return
		case Drop:
			consumed.addTree(n)
			return
		}

		if n.Data == "ul" || n.Data == "ol" {
			list++
			for i := range d.Blocks {
				d.Blocks[i].List = list
			}
		}
		blocks = append(blocks, d.Blocks...)
		consumed.addTree(n)
	})

	return blocks
}

// ignoredNodes returns every node below root that must not contribute to
// the output: removed elements and noise subtrees.
func ignoredNodes(root *goquery.Selection, c *Classifier) nodeSet {
	ignored := make(nodeSet)

	selectors := append(append([]string{}, docscrape.DefaultRemove...), c.profile.Remove...)
	for _, sel := range selectors {
		root.Find(sel).Each(func(_ int, s *goquery.Selection) {
			ignored.addTree(s.Get(0))
		})
	}

	if len(c.profile.NoiseClasses) > 0 {
		root.Find("*").Each(func(_ int, s *goquery.Selection) {
			n := s.Get(0)
			if !ignored.has(n) && c.isNoise(n) {
				ignored.addTree(n)
			}
		})
	}

	return ignored
}

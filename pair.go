package docscrape

// DefaultPairWindow is how many positions after a label are searched for
// the code block it introduces.
const DefaultPairWindow = 10

// Pair collapses Label blocks with the code blocks that follow them.
//
// A label pairs with the first unused CodeBlock within window positions.
// The scan stops at the first Paragraph, Heading or Label in between. A
// Prompt pair additionally captures the next CodeBlock after its own, with
// the same stop rules, as its Output. Pairing is greedy and left to right;
// a code block consumed by one label is never reused. A label without a
// code block is kept as a plain paragraph.
func Pair(blocks []Block, window int) []Block {
	if window <= 0 {
		window = DefaultPairWindow
	}

	used := make([]bool, len(blocks))
	out := make([]Block, 0, len(blocks))

	for i, b := range blocks {
		if used[i] {
			continue
		}
		if b.Kind != KindLabel {
			out = append(out, b)
			continue
		}

		j := nextCode(blocks, used, i, window)
		if j < 0 {
			out = append(out, Block{Kind: KindParagraph, Text: b.Text, Origin: b.Origin})
			continue
		}
		used[j] = true

		pair := Block{
			Kind:     KindPair,
			Label:    b.Label,
			Language: blocks[j].Language,
			Code:     blocks[j].Code,
			Origin:   b.Origin,
		}
		if b.Label == LabelPrompt {
			if k := nextCode(blocks, used, j, window); k >= 0 {
				used[k] = true
				output := blocks[k]
				pair.Output = &output
			}
		}
		out = append(out, pair)
	}

	return out
}

// nextCode returns the index of the first unused code block after from,
// or -1 when a stop block or the end of the window comes first.
func nextCode(blocks []Block, used []bool, from, window int) int {
	for j := from + 1; j <= from+window && j < len(blocks); j++ {
		if used[j] {
			continue
		}
		switch blocks[j].Kind {
		case KindCodeBlock:
			return j
		case KindParagraph, KindHeading, KindLabel:
			return -1
		}
	}
	return -1
}

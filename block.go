package docscrape

import "golang.org/x/net/html"

// BlockKind identifies the semantic kind of a Block.
type BlockKind int

// Block kinds produced by the classifier and the pairing pass.
const (
	KindSkip BlockKind = iota
	KindHeading
	KindParagraph
	KindListItem
	KindCodeBlock
	KindQuote
	KindCallout
	KindLabel
	KindTable
	KindPair
)

var blockKindNames = map[BlockKind]string{
	KindSkip:      "skip",
	KindHeading:   "heading",
	KindParagraph: "paragraph",
	KindListItem:  "list_item",
	KindCodeBlock: "code_block",
	KindQuote:     "quote",
	KindCallout:   "callout",
	KindLabel:     "label",
	KindTable:     "table",
	KindPair:      "pair",
}

// String returns the kind's name.
func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// LabelKind distinguishes the two label vocabularies.
type LabelKind int

// Label kinds.
const (
	LabelNone LabelKind = iota
	LabelPrompt
	LabelOutput
)

// String returns the label as it is rendered in Markdown.
func (k LabelKind) String() string {
	switch k {
	case LabelPrompt:
		return "Prompt"
	case LabelOutput:
		return "Output"
	default:
		return ""
	}
}

// Block is one classified unit of page content.
//
// Which fields are meaningful depends on Kind:
//   - Heading: Level, Text
//   - Paragraph, Quote: Text
//   - ListItem: Ordered, List, Index, Text
//   - CodeBlock: Language, Code
//   - Callout: Title, Text
//   - Label: Label, Text (the literal label text)
//   - Table: Text (rendered Markdown)
//   - Pair: Label, Language, Code and optionally Output
type Block struct {
	Kind BlockKind

	Level   int
	Ordered bool
	// List identifies the list instance a ListItem belongs to.
	List int
	// Index is the 1-based position of a ListItem within its list.
	Index int

	Language string
	Code     string
	Title    string
	Text     string
	Label    LabelKind

	// Output is the code block captured as the output of a Prompt pair.
	Output *Block

	// Origin is the DOM node the block was classified from.
	Origin *html.Node
}

// IsEmpty reports whether the block carries no renderable text.
// Code blocks are never empty; an empty fence is meaningful.
func (b Block) IsEmpty() bool {
	switch b.Kind {
	case KindCodeBlock, KindPair:
		return false
	default:
		return b.Text == ""
	}
}

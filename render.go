package docscrape

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// shortCodeLimit is the rune length below which single-line paired code
// renders inline.
const shortCodeLimit = 150

// Render concatenates the Markdown of every block in order. A run of list
// items belonging to one list is terminated by a blank line.
func Render(blocks []Block) string {
	var b strings.Builder
	for i, block := range blocks {
		b.WriteString(RenderBlock(block))
		if block.Kind == KindListItem && endsList(blocks, i) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func endsList(blocks []Block, i int) bool {
	if i+1 >= len(blocks) {
		return true
	}
	next := blocks[i+1]
	return next.Kind != KindListItem || next.List != blocks[i].List
}

// RenderBlock maps a single block to its Markdown fragment.
func RenderBlock(b Block) string {
	switch b.Kind {
	case KindHeading:
		return strings.Repeat("#", clampLevel(b.Level)) + " " + b.Text + "\n\n"
	case KindParagraph, KindLabel:
		return b.Text + "\n\n"
	case KindListItem:
		if b.Ordered {
			index := b.Index
			if index < 1 {
				index = 1
			}
			return strconv.Itoa(index) + ". " + b.Text + "\n"
		}
		return "- " + b.Text + "\n"
	case KindCodeBlock:
		return fenced(b.Language, b.Code) + "\n\n"
	case KindQuote:
		return "> " + b.Text + "\n\n"
	case KindCallout:
		return "> **" + b.Title + "**\n> " + b.Text + "\n\n"
	case KindTable:
		return strings.TrimSpace(b.Text) + "\n\n"
	case KindPair:
		s := labeled(b.Label.String(), b.Language, b.Code)
		if b.Output != nil {
			s += labeled(LabelOutput.String(), b.Output.Language, b.Output.Code)
		}
		return s
	default:
		return ""
	}
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

// labeled renders a label and its code, inline when the code is short.
func labeled(label, language, code string) string {
	if !strings.ContainsAny(code, "\n`") && utf8.RuneCountInString(code) < shortCodeLimit {
		return "**" + label + "**: `" + code + "`\n\n"
	}
	return "**" + label + "**:\n" + fenced(language, code) + "\n\n"
}

// fenced wraps code in a fence longer than any backtick run inside it.
func fenced(language, code string) string {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	return fence + language + "\n" + code + "\n" + fence
}

package docscrape

// Converter converts HTML to Markdown. The engine uses it for tables and
// as a last resort when block classification yields nothing.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

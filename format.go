package docscrape

import (
	"strconv"
	"strings"
)

// FormatArticles assembles records into one Markdown export. Each article
// starts with its title, link and hierarchy path and ends with a rule.
func FormatArticles(articles []*ArticleRecord) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	for _, a := range articles {
		b.WriteString(FormatArticle(a))
	}
	return b.String()
}

// FormatArticle renders a single record in export form.
func FormatArticle(a *ArticleRecord) string {
	var b strings.Builder

	b.WriteString("# " + a.Title + "\n\n")
	b.WriteString("**Link**: " + a.URL + "\n")
	if !a.Hierarchy.IsUnknown() {
		b.WriteString("**Path**: " + a.Hierarchy.String() + "\n")
	}
	if len(a.RelatedLinks) > 0 {
		b.WriteString("**Related**: " + strings.Join(a.RelatedLinks, ", ") + "\n")
	}
	b.WriteString("\n")

	switch {
	case strings.TrimSpace(a.Body) != "":
		b.WriteString(strings.TrimRight(a.Body, "\n") + "\n\n")
	case a.Diagnostic != "":
		b.WriteString("_" + a.Diagnostic + "_\n\n")
	}

	b.WriteString("---\n\n")
	return b.String()
}

// FormatHeader returns the document heading placed above an export.
func FormatHeader(name string, count int) string {
	noun := "articles"
	if count == 1 {
		noun = "article"
	}
	return "# " + name + "\n\n_" + strconv.Itoa(count) + " " + noun + "_\n\n---\n\n"
}

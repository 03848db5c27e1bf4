package crawl

import "github.com/fwojciec/docscrape"

// ContentDiffers reports whether the browser-rendered page yields
// substantially more article text (over 50% more) than the plain HTTP
// page, meaning the site needs a browser. An extraction error, or a
// missing content root in the HTTP page only, counts as a difference.
func ContentDiffers(httpPage, browserPage *docscrape.Page, extractor docscrape.ArticleExtractor, p *docscrape.Profile) bool {
	plain, err := extractor.Extract(httpPage, p)
	if err != nil {
		return true
	}
	rendered, err := extractor.Extract(browserPage, p)
	if err != nil {
		return true
	}

	if plain.Diagnostic != "" && rendered.Diagnostic == "" {
		return true
	}

	plainLen := len(plain.Body)
	renderedLen := len(rendered.Body)
	if plainLen == 0 {
		return renderedLen > 0
	}
	return float64(renderedLen) > float64(plainLen)*1.5
}

package crawl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/crawl"
	"github.com/fwojciec/docscrape/mock"
	"github.com/stretchr/testify/assert"
)

// bodyExtractor returns the page HTML as the article body, or the
// configured error and diagnostic for pages containing their marker.
func bodyExtractor(fail, empty string) *mock.ArticleExtractor {
	return &mock.ArticleExtractor{
		ExtractFn: func(page *docscrape.Page, _ *docscrape.Profile) (*docscrape.ArticleRecord, error) {
			if fail != "" && strings.Contains(page.HTML, fail) {
				return nil, errors.New("extraction failed")
			}
			if empty != "" && strings.Contains(page.HTML, empty) {
				return &docscrape.ArticleRecord{Diagnostic: docscrape.NoContentDiagnostic}, nil
			}
			return &docscrape.ArticleRecord{Body: page.HTML}, nil
		},
	}
}

func TestContentDiffers(t *testing.T) {
	t.Parallel()

	p := &docscrape.Profile{Name: "test"}
	page := func(html string) *docscrape.Page {
		return &docscrape.Page{URL: "https://x.test/", HTML: html}
	}

	tests := []struct {
		name      string
		plain     string
		rendered  string
		extractor *mock.ArticleExtractor
		want      bool
	}{
		{
			name:      "similar content",
			plain:     strings.Repeat("a", 100),
			rendered:  strings.Repeat("a", 120),
			extractor: bodyExtractor("", ""),
			want:      false,
		},
		{
			name:      "rendered content much longer",
			plain:     strings.Repeat("a", 100),
			rendered:  strings.Repeat("a", 151),
			extractor: bodyExtractor("", ""),
			want:      true,
		},
		{
			name:      "plain page is empty",
			plain:     "",
			rendered:  "text",
			extractor: bodyExtractor("", ""),
			want:      true,
		},
		{
			name:      "both empty",
			plain:     "",
			rendered:  "",
			extractor: bodyExtractor("", ""),
			want:      false,
		},
		{
			name:      "plain page has no content root",
			plain:     "shell",
			rendered:  "article",
			extractor: bodyExtractor("", "shell"),
			want:      true,
		},
		{
			name:      "extraction error",
			plain:     "broken",
			rendered:  "article",
			extractor: bodyExtractor("broken", ""),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := crawl.ContentDiffers(page(tt.plain), page(tt.rendered), tt.extractor, p)

			assert.Equal(t, tt.want, got)
		})
	}
}

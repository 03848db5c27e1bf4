package docscrape

import (
	"context"
	"time"
)

// NoContentDiagnostic is recorded on articles whose page matched none of
// the profile's content roots.
const NoContentDiagnostic = "no content root matched"

// ArticleRecord is the extraction result for one page.
type ArticleRecord struct {
	ID           string        `json:"id"`
	SourceID     string        `json:"sourceId"`
	Platform     string        `json:"platform"`
	Hierarchy    HierarchyPath `json:"hierarchy"`
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	Body         string        `json:"body"`
	RelatedLinks []string      `json:"relatedLinks"`
	Diagnostic   string        `json:"diagnostic,omitempty"`
	ContentHash  string        `json:"contentHash"`
	Position     int           `json:"position"`
	FetchedAt    time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (a *ArticleRecord) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new article.
	// The article's SourceID must reference an existing source.
	CreateArticle(ctx context.Context, article *ArticleRecord) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*ArticleRecord, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*ArticleRecord, error)

	// DeleteArticlesBySource removes all articles of a source.
	DeleteArticlesBySource(ctx context.Context, sourceID string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID       *string `json:"id"`
	SourceID *string `json:"sourceId"`
	URL      *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docscrape.ArticleService = (*ArticleService)(nil)

const articleColumns = "id, source_id, platform, hierarchy, title, url, body, related_links, diagnostic, content_hash, position, fetched_at"

// ArticleService implements docscrape.ArticleService using SQLite.
// Hierarchy and related links are stored as JSON arrays.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle stores a new article. The ID is generated; ContentHash and
// FetchedAt are filled in when unset.
func (s *ArticleService) CreateArticle(ctx context.Context, article *docscrape.ArticleRecord) error {
	if err := article.Validate(); err != nil {
		return err
	}
	if article.SourceID == "" {
		return docscrape.Errorf(docscrape.EINVALID, "article source required")
	}

	hierarchy, err := encodeList(article.Hierarchy)
	if err != nil {
		return err
	}
	related, err := encodeList(article.RelatedLinks)
	if err != nil {
		return err
	}

	article.ID = uuid.New().String()
	if article.ContentHash == "" && article.Body != "" {
		article.ContentHash = hashContent(article.Body)
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.SourceID, article.Platform, hierarchy, article.Title, article.URL,
		article.Body, related, article.Diagnostic, article.ContentHash, article.Position,
		formatTime(article.FetchedAt))

	switch {
	case isForeignKeyViolation(err):
		return docscrape.Errorf(docscrape.ENOTFOUND, "source not found")
	case isUniqueViolation(err):
		return docscrape.Errorf(docscrape.EINVALID, "article %s already stored", article.URL)
	}
	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*docscrape.ArticleRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "article not found")
	}
	return article, err
}

// FindArticles retrieves articles matching the filter in crawl order.
func (s *ArticleService) FindArticles(ctx context.Context, filter docscrape.ArticleFilter) ([]*docscrape.ArticleRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY source_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*docscrape.ArticleRecord
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// DeleteArticlesBySource removes all articles of a source.
func (s *ArticleService) DeleteArticlesBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE source_id = ?", sourceID)
	return err
}

func scanArticle(row scanner) (*docscrape.ArticleRecord, error) {
	var a docscrape.ArticleRecord
	var hierarchy, related, fetchedAt string

	if err := row.Scan(&a.ID, &a.SourceID, &a.Platform, &hierarchy, &a.Title, &a.URL,
		&a.Body, &related, &a.Diagnostic, &a.ContentHash, &a.Position, &fetchedAt); err != nil {
		return nil, err
	}

	levels, err := decodeList(hierarchy, "hierarchy")
	if err != nil {
		return nil, err
	}
	if len(levels) > 0 {
		a.Hierarchy = docscrape.HierarchyPath(levels)
	}
	if a.RelatedLinks, err = decodeList(related, "related_links"); err != nil {
		return nil, err
	}
	if len(a.RelatedLinks) == 0 {
		a.RelatedLinks = nil
	}
	if a.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &a, nil
}

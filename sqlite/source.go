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
var _ docscrape.SourceService = (*SourceService)(nil)

const sourceColumns = "id, name, entry_url, platform, created_at, updated_at"

// SourceService implements docscrape.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource creates a new source. Names are unique.
func (s *SourceService) CreateSource(ctx context.Context, source *docscrape.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	source.ID = uuid.New().String()
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (`+sourceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, source.ID, source.Name, source.EntryURL, source.Platform,
		formatTime(source.CreatedAt), formatTime(source.UpdatedAt))
	if isUniqueViolation(err) {
		return docscrape.Errorf(docscrape.EINVALID, "source %q already exists", source.Name)
	}
	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*docscrape.Source, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE id = ?`, id)
	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "source not found")
	}
	return source, err
}

// FindSources retrieves sources matching the filter, ordered by name.
func (s *SourceService) FindSources(ctx context.Context, filter docscrape.SourceFilter) ([]*docscrape.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sourceColumns + " FROM sources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*docscrape.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, upd docscrape.SourceUpdate) (*docscrape.Source, error) {
	source, err := s.FindSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.EntryURL != nil {
		source.EntryURL = *upd.EntryURL
	}
	if upd.Platform != nil {
		source.Platform = *upd.Platform
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	source.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET entry_url = ?, platform = ?, updated_at = ?
		WHERE id = ?
	`, source.EntryURL, source.Platform, formatTime(source.UpdatedAt), id)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// DeleteSource permanently removes a source. Its articles are removed by
// the foreign key cascade.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return docscrape.Errorf(docscrape.ENOTFOUND, "source not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*docscrape.Source, error) {
	var source docscrape.Source
	var createdAt, updatedAt string

	if err := row.Scan(&source.ID, &source.Name, &source.EntryURL, &source.Platform,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &source, nil
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func pragma(t *testing.T, db *sqlite.DB, name string) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA "+name).Scan(&v))
	return v
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("migrates an empty database", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, table := range []string{"sources", "articles"} {
			var n int
			err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
			require.NoError(t, err, table)
			assert.Zero(t, n, table)
		}

		v, err := db.Version()
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("applies connection pragmas", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		assert.Equal(t, "1", pragma(t, db, "foreign_keys"))
		assert.Equal(t, "5000", pragma(t, db, "busy_timeout"))
		assert.Equal(t, "1", pragma(t, db, "synchronous"))
	})

	t.Run("file database uses WAL", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		assert.Equal(t, "wal", pragma(t, db, "journal_mode"))
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "missing", "db.sqlite"))

		require.Error(t, db.Open())
	})

	t.Run("rejects a newer schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "future.db")
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(context.Background(), "PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		err = sqlite.NewDB(path).Open()

		assert.ErrorContains(t, err, "newer than this program")
	})
}

func TestDB_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs.db")
	ctx := context.Background()

	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	_, err := db.ExecContext(ctx, `INSERT INTO sources (id, name, entry_url, created_at, updated_at) VALUES ('1', 'a', 'https://a.test/', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = sqlite.NewDB(path)
	require.NoError(t, db.Open())
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sources").Scan(&count))
	assert.Equal(t, 1, count)

	v, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestDB_DeletingSourceCascades(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO sources (id, name, entry_url, created_at, updated_at) VALUES ('s', 'a', 'https://a.test/', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO articles (id, source_id, title, url, fetched_at) VALUES ('a1', 's', 'T', 'https://a.test/1', 'x')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM sources WHERE id = 's'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n))
	assert.Zero(t, n)
}

package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{0, 0, 0}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (*docscrape.Page, error) {
			calls++
			return &docscrape.Page{URL: url, HTML: "ok"}, nil
		}

		page, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, delays)

		require.NoError(t, err)
		assert.Equal(t, "ok", page.HTML)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var attempts []int
		fetch := func(_ context.Context, url string) (*docscrape.Page, error) {
			calls++
			if calls < 3 {
				return nil, docscrape.Errorf(docscrape.EFETCH, "status 503")
			}
			return &docscrape.Page{URL: url}, nil
		}
		onRetry := func(_ string, attempt int, _ error) {
			attempts = append(attempts, attempt)
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, onRetry, delays)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{2, 3}, attempts)
	})

	t.Run("gives up after last delay", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*docscrape.Page, error) {
			calls++
			return nil, errors.New("connection reset")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, delays)

		require.EqualError(t, err, "connection reset")
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*docscrape.Page, error) {
			calls++
			return nil, docscrape.Errorf(docscrape.ENOTFOUND, "status 404")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, delays)

		assert.Equal(t, docscrape.ENOTFOUND, docscrape.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (*docscrape.Page, error) {
			cancel()
			return nil, errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

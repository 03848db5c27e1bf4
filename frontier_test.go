package docscrape_test

import (
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierState(t *testing.T) {
	t.Parallel()

	t.Run("pops in push order", func(t *testing.T) {
		t.Parallel()

		s := docscrape.NewFrontierState()
		s.Push("https://x.test/a", 0)
		s.Push("https://x.test/b", 1)

		first, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, docscrape.FrontierEntry{URL: "https://x.test/a", Depth: 0}, first)

		second, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://x.test/b", second.URL)
		assert.Equal(t, 1, second.Depth)

		_, ok = s.Pop()
		assert.False(t, ok)
	})

	t.Run("rejects duplicates even after pop", func(t *testing.T) {
		t.Parallel()

		s := docscrape.NewFrontierState()
		assert.True(t, s.Push("https://x.test/a", 0))
		_, _ = s.Pop()

		assert.False(t, s.Push("https://x.test/a", 2))
		assert.Equal(t, 0, s.Len())
		assert.True(t, s.Seen("https://x.test/a"))
	})

	t.Run("mark visited blocks later push", func(t *testing.T) {
		t.Parallel()

		s := docscrape.NewFrontierState()
		s.MarkVisited("https://x.test/final")

		assert.False(t, s.Push("https://x.test/final", 1))
		assert.Len(t, s.Visited, 1)
	})
}

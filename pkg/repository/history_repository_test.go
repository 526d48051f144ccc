package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	h := repos.History

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	visit := func(url string, at time.Time) {
		h.now = func() time.Time { return at }
		require.NoError(t, h.RecordVisit(ctx, url))
	}

	visit("https://www.bbc.co.uk/news/1", base)
	visit("https://news.example.com/a", base.Add(time.Minute))
	visit("https://blog.golang.org/post", base.Add(2*time.Minute))
	visit("https://example.com/b", base.Add(3*time.Minute))
	visit("https://m.bbc.co.uk/x", base.Add(-time.Hour))

	t.Run("recent domains", func(t *testing.T) {
		res, err := h.RecentDomains(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "golang.org", "bbc.co.uk"}, res)
	})

	t.Run("limit", func(t *testing.T) {
		res, err := h.RecentDomains(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "golang.org"}, res)

		res, err = h.RecentDomains(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("bad url", func(t *testing.T) {
		h.now = time.Now
		require.Error(t, h.RecordVisit(ctx, ""))
	})

	t.Run("prune", func(t *testing.T) {
		h.now = func() time.Time { return base.Add(90 * time.Second) }
		n, err := h.PruneVisits(ctx, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n, "bbc visits are older than a minute before now")

		res, err := h.RecentDomains(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "golang.org"}, res)
	})
}

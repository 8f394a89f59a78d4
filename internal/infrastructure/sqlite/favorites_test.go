package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiskr/backend/internal/domain"
)

func TestFavorites(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, c.Insert(ctx, testWhiskey("w-1", "Ardbeg 10", "1")))
	require.NoError(t, c.Insert(ctx, testWhiskey("w-2", "Bowmore 12", "2")))
	require.NoError(t, c.InsertReview(ctx, testReview("r-1", "w-2", "u-2", 4)))

	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, c.AddFavorite(ctx, "u-1", "w-1", t0))
	require.NoError(t, c.AddFavorite(ctx, "u-1", "w-2", t0.Add(time.Hour)))

	t.Run("newest first with ratings", func(t *testing.T) {
		favs, err := c.ListFavorites(ctx, "u-1", domain.Page{})
		require.NoError(t, err)
		require.Len(t, favs, 2)

		assert.Equal(t, "w-2", favs[0].WhiskeyID)
		assert.Equal(t, t0.Add(time.Hour), favs[0].CreatedAt)
		assert.Equal(t, "Bowmore 12", favs[0].Whiskey.Name)
		assert.Equal(t, 1, favs[0].Whiskey.ReviewCount)
		assert.InDelta(t, 4.0, favs[0].Whiskey.AverageRating, 1e-9)
		assert.Equal(t, "w-1", favs[1].WhiskeyID)
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		require.NoError(t, c.AddFavorite(ctx, "u-1", "w-1", t0.Add(2*time.Hour)))

		favs, err := c.ListFavorites(ctx, "u-1", domain.Page{})
		require.NoError(t, err)
		assert.Len(t, favs, 2)
		assert.Equal(t, "w-2", favs[0].WhiskeyID)
	})

	t.Run("favorites are per user", func(t *testing.T) {
		favs, err := c.ListFavorites(ctx, "u-2", domain.Page{})
		require.NoError(t, err)
		assert.Empty(t, favs)
	})

	t.Run("unknown whiskey", func(t *testing.T) {
		err := c.AddFavorite(ctx, "u-1", "missing", t0)
		assert.ErrorIs(t, err, domain.ErrWhiskeyNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, c.RemoveFavorite(ctx, "u-1", "w-2"))
		require.NoError(t, c.RemoveFavorite(ctx, "u-1", "w-2"))

		favs, err := c.ListFavorites(ctx, "u-1", domain.Page{})
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, "w-1", favs[0].WhiskeyID)
	})
}

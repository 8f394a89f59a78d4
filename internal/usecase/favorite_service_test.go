package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiskr/backend/internal/domain"
)

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	repo := NewMockFavoriteRepository()
	svc := NewFavoriteService(repo, testLogger())
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	t.Run("requires authentication", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddFavorite(ctx, "", "w-1"), domain.ErrNotAuthenticated)
		assert.ErrorIs(t, svc.RemoveFavorite(ctx, " ", "w-1"), domain.ErrNotAuthenticated)
		_, err := svc.ListFavorites(ctx, "", domain.Page{})
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})

	t.Run("requires whiskey id", func(t *testing.T) {
		assert.ErrorIs(t, svc.AddFavorite(ctx, "u-1", ""), domain.ErrInvalidRequest)
	})

	t.Run("add list remove", func(t *testing.T) {
		require.NoError(t, svc.AddFavorite(ctx, "u-1", "w-1"))
		require.NoError(t, svc.AddFavorite(ctx, "u-1", "w-2"))

		favs, err := svc.ListFavorites(ctx, "u-1", domain.Page{})
		require.NoError(t, err)
		require.Len(t, favs, 2)
		assert.Equal(t, at, favs[0].CreatedAt)

		require.NoError(t, svc.RemoveFavorite(ctx, "u-1", "w-1"))
		favs, err = svc.ListFavorites(ctx, "u-1", domain.Page{})
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, "w-2", favs[0].WhiskeyID)
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := svc.ListFavorites(ctx, "u-1", domain.Page{Limit: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

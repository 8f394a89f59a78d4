package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
)

// FavoriteService manages the whiskeys a signed-in user has saved
type FavoriteService struct {
	favorites domain.FavoriteRepository
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewFavoriteService creates a new favorites service
func NewFavoriteService(favorites domain.FavoriteRepository, logger logrus.FieldLogger) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		log:       logger,
		now:       time.Now,
	}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, whiskeyID string) error {
	if err := checkFavoriteArgs(userID, whiskeyID); err != nil {
		return err
	}
	if err := s.favorites.AddFavorite(ctx, userID, whiskeyID, s.now().UTC()); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"whiskey": whiskeyID, "user": userID}).Debug("favorite added")
	return nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, whiskeyID string) error {
	if err := checkFavoriteArgs(userID, whiskeyID); err != nil {
		return err
	}
	return s.favorites.RemoveFavorite(ctx, userID, whiskeyID)
}

// ListFavorites returns the caller's saved whiskeys, most recent first
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string, page domain.Page) ([]domain.Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if page.Limit < 0 || page.Offset < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.favorites.ListFavorites(ctx, userID, page)
}

func checkFavoriteArgs(userID, whiskeyID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrNotAuthenticated
	}
	if strings.TrimSpace(whiskeyID) == "" {
		return domain.ErrInvalidRequest
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
)

// ReviewService handles whiskey ratings and tasting notes.
// Writes require an authenticated user, and only the author may change a review.
type ReviewService struct {
	reviews domain.ReviewRepository
	log     logrus.FieldLogger
	now     func() time.Time
	newID   func() string
}

// NewReviewService creates a new review service
func NewReviewService(reviews domain.ReviewRepository, logger logrus.FieldLogger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		log:     logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// AddReview records userID's review of whiskeyID
func (s *ReviewService) AddReview(ctx context.Context, userID, whiskeyID string, in domain.ReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	whiskeyID = strings.TrimSpace(whiskeyID)
	if whiskeyID == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &domain.Review{
		ID:           s.newID(),
		WhiskeyID:    whiskeyID,
		UserID:       userID,
		Rating:       in.Rating,
		TastingNotes: strings.TrimSpace(in.TastingNotes),
		Tags:         normalizeTags(in.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.reviews.InsertReview(ctx, r); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"review":  r.ID,
		"whiskey": whiskeyID,
		"user":    userID,
		"rating":  r.Rating,
	}).Info("review added")
	return r, nil
}

// UpdateReview applies the set fields of upd to the caller's own review
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, upd domain.ReviewUpdate) (*domain.Review, error) {
	r, err := s.ownReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if upd.Rating != nil {
		if err := validateRating(*upd.Rating); err != nil {
			return nil, err
		}
		r.Rating = *upd.Rating
	}
	if upd.TastingNotes != nil {
		r.TastingNotes = strings.TrimSpace(*upd.TastingNotes)
	}
	if upd.Tags != nil {
		r.Tags = normalizeTags(*upd.Tags)
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.reviews.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReview removes the caller's own review
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	if _, err := s.ownReview(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"review": reviewID, "user": userID}).Info("review deleted")
	return nil
}

// WhiskeyReviews lists the reviews of a whiskey, newest first
func (s *ReviewService) WhiskeyReviews(ctx context.Context, whiskeyID string, page domain.Page) ([]domain.Review, error) {
	if strings.TrimSpace(whiskeyID) == "" || page.Limit < 0 || page.Offset < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.reviews.ListWhiskeyReviews(ctx, whiskeyID, page)
}

// UserReviews lists the reviews written by a user, newest first
func (s *ReviewService) UserReviews(ctx context.Context, userID string, page domain.Page) ([]domain.Review, error) {
	if strings.TrimSpace(userID) == "" || page.Limit < 0 || page.Offset < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.reviews.ListUserReviews(ctx, userID, page)
}

func (s *ReviewService) ownReview(ctx context.Context, userID, reviewID string) (*domain.Review, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if strings.TrimSpace(reviewID) == "" {
		return nil, domain.ErrInvalidRequest
	}

	r, err := s.reviews.FindReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func validateRating(rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidRequest, domain.MinRating, domain.MaxRating)
	}
	return nil
}

// normalizeTags trims tags and drops blanks and case-insensitive repeats, keeping first spelling
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

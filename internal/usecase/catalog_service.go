package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
)

// CatalogService handles catalog reads and the add-scanned-whiskey flow
type CatalogService struct {
	catalog domain.CatalogRepository
	log     logrus.FieldLogger
	now     func() time.Time
	newID   func() string
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog domain.CatalogRepository, logger logrus.FieldLogger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		log:     logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// AddScannedWhiskey stores a resolved candidate as a new authoritative catalog record.
// It requires an authenticated user and always records the scan code as the barcode.
func (s *CatalogService) AddScannedWhiskey(
	ctx context.Context,
	userID string,
	code string,
	candidate domain.ProductCandidate,
) (*domain.Whiskey, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNotAuthenticated
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidScanCode
	}

	candidate.Barcode = code
	c := domain.NewCandidate(candidate)
	now := s.now().UTC()

	w := &domain.Whiskey{
		ID:          s.newID(),
		Name:        c.Name,
		Brand:       c.Brand,
		Distillery:  c.Distillery,
		Type:        c.Type,
		Region:      c.Region,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Barcode:     c.Barcode,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.catalog.Insert(ctx, w); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"id":      w.ID,
		"barcode": w.Barcode,
		"user":    userID,
	}).Info("scanned whiskey added to catalog")
	return w, nil
}

// GetWhiskey returns the catalog record with the given id
func (s *CatalogService) GetWhiskey(ctx context.Context, id string) (*domain.Whiskey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.catalog.FindByID(ctx, id)
}

// SearchWhiskeys lists catalog records matching filter. The free-text query is cleaned first.
func (s *CatalogService) SearchWhiskeys(ctx context.Context, filter domain.SearchFilter) ([]domain.Whiskey, error) {
	if filter.MinAge < 0 || filter.MaxAge < 0 || filter.Limit < 0 || filter.Offset < 0 {
		return nil, domain.ErrInvalidRequest
	}
	if filter.MinAge > 0 && filter.MaxAge > 0 && filter.MinAge > filter.MaxAge {
		return nil, domain.ErrInvalidRequest
	}
	if filter.MinRating < 0 || filter.MinRating > domain.MaxRating {
		return nil, domain.ErrInvalidRequest
	}
	filter.Query = cleanSearchQuery(filter.Query)
	return s.catalog.Search(ctx, filter)
}

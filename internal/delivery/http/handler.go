package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whiskr/backend/internal/domain"
)

const serviceVersion = "1.0.0"

// BarcodeResolver resolves scan codes to whiskey candidates
type BarcodeResolver interface {
	Resolve(ctx context.Context, code string) (domain.ResolutionResult, error)
}

// CatalogUsecase covers catalog reads and the add-scanned-whiskey flow
type CatalogUsecase interface {
	AddScannedWhiskey(ctx context.Context, userID, code string, candidate domain.ProductCandidate) (*domain.Whiskey, error)
	GetWhiskey(ctx context.Context, id string) (*domain.Whiskey, error)
	SearchWhiskeys(ctx context.Context, filter domain.SearchFilter) ([]domain.Whiskey, error)
}

// ReviewUsecase covers whiskey ratings and tasting notes
type ReviewUsecase interface {
	AddReview(ctx context.Context, userID, whiskeyID string, in domain.ReviewInput) (*domain.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID string, upd domain.ReviewUpdate) (*domain.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID string) error
	WhiskeyReviews(ctx context.Context, whiskeyID string, page domain.Page) ([]domain.Review, error)
	UserReviews(ctx context.Context, userID string, page domain.Page) ([]domain.Review, error)
}

// FavoriteUsecase covers the signed-in user's saved whiskeys
type FavoriteUsecase interface {
	AddFavorite(ctx context.Context, userID, whiskeyID string) error
	RemoveFavorite(ctx context.Context, userID, whiskeyID string) error
	ListFavorites(ctx context.Context, userID string, page domain.Page) ([]domain.Favorite, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	barcodes  BarcodeResolver
	catalog   CatalogUsecase
	reviews   ReviewUsecase
	favorites FavoriteUsecase
}

// NewHandler creates a new HTTP handler. Nil dependencies make their endpoints answer 501.
func NewHandler(barcodes BarcodeResolver, catalog CatalogUsecase, reviews ReviewUsecase, favorites FavoriteUsecase) *Handler {
	return &Handler{
		barcodes:  barcodes,
		catalog:   catalog,
		reviews:   reviews,
		favorites: favorites,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "whiskr-backend",
		"version": serviceVersion,
	})
}

// ResolveBarcode handles GET /api/v1/barcodes/:code
func (h *Handler) ResolveBarcode(c *gin.Context) {
	if h.barcodes == nil {
		notConfigured(c, "barcode resolution")
		return
	}

	result, err := h.barcodes.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddScannedWhiskey handles POST /api/v1/barcodes/:code/whiskeys.
// The body is the candidate returned by a previous resolution.
func (h *Handler) AddScannedWhiskey(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	var candidate domain.ProductCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid whiskey payload: " + err.Error()})
		return
	}

	w, err := h.catalog.AddScannedWhiskey(c.Request.Context(), currentUserID(c), c.Param("code"), candidate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, w)
}

// GetWhiskey handles GET /api/v1/whiskeys/:id
func (h *Handler) GetWhiskey(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	w, err := h.catalog.GetWhiskey(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// SearchWhiskeys handles GET /api/v1/whiskeys?q=&type=&region=&min_age=&max_age=&min_rating=&limit=&offset=
func (h *Handler) SearchWhiskeys(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	filter, err := parseSearchFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	whiskeys, err := h.catalog.SearchWhiskeys(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"whiskeys": whiskeys,
		"count":    len(whiskeys),
	})
}

func parseSearchFilter(c *gin.Context) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{Query: c.Query("q")}

	if raw := c.Query("type"); raw != "" {
		t, ok := domain.LookupWhiskeyType(raw)
		if !ok {
			return domain.SearchFilter{}, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidRequest, raw)
		}
		filter.Type = t
	}
	if raw := c.Query("region"); raw != "" {
		r, ok := domain.LookupRegion(raw)
		if !ok {
			return domain.SearchFilter{}, fmt.Errorf("%w: unknown region %q", domain.ErrInvalidRequest, raw)
		}
		filter.Region = r
	}
	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SearchFilter{}, domain.ErrInvalidRequest
		}
		filter.MinRating = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"min_age", &filter.MinAge},
		{"max_age", &filter.MaxAge},
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	}
	for _, p := range ints {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.SearchFilter{}, domain.ErrInvalidRequest
		}
		*p.dst = v
	}

	return filter, nil
}

// parsePage reads the limit and offset query parameters
func parsePage(c *gin.Context) (domain.Page, error) {
	var page domain.Page
	for key, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Page{}, domain.ErrInvalidRequest
		}
		*dst = v
	}
	return page, nil
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": what + " is not configured",
	})
}

// writeError maps domain errors to HTTP responses
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidScanCode), errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrWhiskeyNotFound), errors.Is(err, domain.ErrReviewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateBarcode):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whiskr/backend/internal/domain"
)

// ListWhiskeyReviews handles GET /api/v1/whiskeys/:id/reviews
func (h *Handler) ListWhiskeyReviews(c *gin.Context) {
	if h.reviews == nil {
		notConfigured(c, "reviews")
		return
	}

	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	reviews, err := h.reviews.WhiskeyReviews(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// ListUserReviews handles GET /api/v1/users/:id/reviews
func (h *Handler) ListUserReviews(c *gin.Context) {
	if h.reviews == nil {
		notConfigured(c, "reviews")
		return
	}

	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	reviews, err := h.reviews.UserReviews(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// AddReview handles POST /api/v1/whiskeys/:id/reviews
func (h *Handler) AddReview(c *gin.Context) {
	if h.reviews == nil {
		notConfigured(c, "reviews")
		return
	}

	var in domain.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload: " + err.Error()})
		return
	}

	r, err := h.reviews.AddReview(c.Request.Context(), currentUserID(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// UpdateReview handles PATCH /api/v1/reviews/:id
func (h *Handler) UpdateReview(c *gin.Context) {
	if h.reviews == nil {
		notConfigured(c, "reviews")
		return
	}

	var upd domain.ReviewUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload: " + err.Error()})
		return
	}

	r, err := h.reviews.UpdateReview(c.Request.Context(), currentUserID(c), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// DeleteReview handles DELETE /api/v1/reviews/:id
func (h *Handler) DeleteReview(c *gin.Context) {
	if h.reviews == nil {
		notConfigured(c, "reviews")
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFavorites handles GET /api/v1/me/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	if h.favorites == nil {
		notConfigured(c, "favorites")
		return
	}

	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	favs, err := h.favorites.ListFavorites(c.Request.Context(), currentUserID(c), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favs, "count": len(favs)})
}

// AddFavorite handles PUT /api/v1/me/favorites/:whiskeyId
func (h *Handler) AddFavorite(c *gin.Context) {
	if h.favorites == nil {
		notConfigured(c, "favorites")
		return
	}

	if err := h.favorites.AddFavorite(c.Request.Context(), currentUserID(c), c.Param("whiskeyId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/v1/me/favorites/:whiskeyId
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if h.favorites == nil {
		notConfigured(c, "favorites")
		return
	}

	if err := h.favorites.RemoveFavorite(c.Request.Context(), currentUserID(c), c.Param("whiskeyId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

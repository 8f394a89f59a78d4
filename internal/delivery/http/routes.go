package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/config"
	"github.com/whiskr/backend/internal/auth"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger logrus.FieldLogger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	v1.Use(AuthMiddleware(auth.NewTokenService(cfg.Auth.JWTSecret)))
	{
		barcodes := v1.Group("/barcodes")
		{
			barcodes.GET("/:code", handler.ResolveBarcode)
			barcodes.POST("/:code/whiskeys", handler.AddScannedWhiskey)
		}

		whiskeys := v1.Group("/whiskeys")
		{
			whiskeys.GET("", handler.SearchWhiskeys)
			whiskeys.GET("/:id", handler.GetWhiskey)
			whiskeys.GET("/:id/reviews", handler.ListWhiskeyReviews)
			whiskeys.POST("/:id/reviews", handler.AddReview)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.PATCH("/:id", handler.UpdateReview)
			reviews.DELETE("/:id", handler.DeleteReview)
		}

		v1.GET("/users/:id/reviews", handler.ListUserReviews)

		me := v1.Group("/me")
		{
			me.GET("/favorites", handler.ListFavorites)
			me.PUT("/favorites/:whiskeyId", handler.AddFavorite)
			me.DELETE("/favorites/:whiskeyId", handler.RemoveFavorite)
		}
	}

	return router
}

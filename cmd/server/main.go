package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/config"
	httpDelivery "github.com/whiskr/backend/internal/delivery/http"
	"github.com/whiskr/backend/internal/infrastructure/openfoodfacts"
	"github.com/whiskr/backend/internal/infrastructure/sqlite"
	"github.com/whiskr/backend/internal/infrastructure/upcitemdb"
	"github.com/whiskr/backend/internal/logging"
	"github.com/whiskr/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("Starting Whiskr Backend v1.0.0")

	// Initialize infrastructure dependencies
	catalog, err := sqlite.Open(cfg.Catalog.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open catalog")
	}
	defer catalog.Close()
	logger.WithField("path", cfg.Catalog.Path).Info("Catalog opened")

	upcClient := upcitemdb.NewClient(upcitemdb.Config{
		BaseURL:           cfg.UPCItemDB.BaseURL,
		APIKey:            cfg.UPCItemDB.APIKey,
		Timeout:           cfg.UPCItemDB.Timeout,
		RequestsPerMinute: cfg.UPCItemDB.RequestsPerMinute,
		RequestsPerDay:    cfg.UPCItemDB.RequestsPerDay,
	}, logger.WithField("component", "upcitemdb"))

	if cfg.UPCItemDB.APIKey == "" {
		logger.Warn("UPCitemdb API key not configured, using trial endpoint (100 lookups/day)")
	}

	offClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		RequestsPerMinute: cfg.OpenFoodFacts.RequestsPerMinute,
	}, logger.WithField("component", "openfoodfacts"))

	// Initialize usecase layer
	barcodeService := usecase.NewBarcodeService(
		logger.WithField("component", "resolver"),
		usecase.NewDefaultChain(catalog, upcClient, offClient)...,
	)
	catalogService := usecase.NewCatalogService(catalog, logger.WithField("component", "catalog"))
	reviewService := usecase.NewReviewService(catalog, logger.WithField("component", "reviews"))
	favoriteService := usecase.NewFavoriteService(catalog, logger.WithField("component", "favorites"))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(barcodeService, catalogService, reviewService, favoriteService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.WithField("addr", addr).Info("Server listening")

	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
)

// BarcodeService resolves scan codes through an ordered chain of lookups.
// It holds no mutable state and is safe for concurrent use.
type BarcodeService struct {
	stages []domain.ProductLookup
	log    logrus.FieldLogger
}

// NewBarcodeService creates a resolver trying stages in the given order.
// The standard chain is catalog, UPCitemdb, Open Food Facts (see NewDefaultChain).
func NewBarcodeService(logger logrus.FieldLogger, stages ...domain.ProductLookup) *BarcodeService {
	return &BarcodeService{
		stages: stages,
		log:    logger,
	}
}

// NewDefaultChain returns the lookups in trust order: curated catalog first,
// then the UPC-specific database, then the generic product database.
func NewDefaultChain(
	catalog domain.CatalogReader,
	upc domain.UPCClient,
	off domain.OpenFoodFactsClient,
) []domain.ProductLookup {
	return []domain.ProductLookup{
		CatalogLookup{Catalog: catalog},
		UPCItemDBLookup{Client: upc},
		OpenFoodFactsLookup{Client: off},
	}
}

// Resolve returns the first match in chain order, or a NotFound result.
// Stage failures are logged and treated as a miss; the only errors returned are
// domain.ErrInvalidScanCode and cancellation of ctx.
func (s *BarcodeService) Resolve(ctx context.Context, code string) (domain.ResolutionResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NotFound(), domain.ErrInvalidScanCode
	}

	for _, stage := range s.stages {
		if err := ctx.Err(); err != nil {
			return domain.NotFound(), err
		}

		entry := s.log.WithFields(logrus.Fields{
			"stage":   stage.Name(),
			"barcode": code,
		})

		candidate, err := stage.Lookup(ctx, code)
		switch {
		case err == nil:
			entry.Debug("barcode resolved")
			return domain.Found(stage.Name(), candidate), nil
		case errors.Is(err, domain.ErrProductNotFound):
			entry.Debug("no match")
		case ctx.Err() != nil:
			return domain.NotFound(), ctx.Err()
		default:
			entry.WithError(err).Warn("lookup failed, trying next source")
		}
	}

	s.log.WithField("barcode", code).Info("barcode not found in any source")
	return domain.NotFound(), nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/whiskr/backend/internal/domain"
	"github.com/whiskr/backend/internal/infrastructure/openfoodfacts"
	"github.com/whiskr/backend/internal/infrastructure/upcitemdb"
)

// CatalogLookup resolves scan codes against the internal catalog.
// Catalog fields are already canonical and are returned verbatim.
type CatalogLookup struct {
	Catalog domain.CatalogReader
}

func (l CatalogLookup) Name() domain.Source { return domain.SourceInternalCatalog }

func (l CatalogLookup) Lookup(ctx context.Context, code string) (domain.ProductCandidate, error) {
	w, err := l.Catalog.FindByBarcode(ctx, code)
	if errors.Is(err, domain.ErrWhiskeyNotFound) {
		return domain.ProductCandidate{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.ProductCandidate{}, err
	}
	return w.Candidate(), nil
}

// UPCItemDBLookup resolves scan codes with UPCitemdb; only the first item is used
type UPCItemDBLookup struct {
	Client domain.UPCClient
}

func (l UPCItemDBLookup) Name() domain.Source { return domain.SourceUPCItemDB }

func (l UPCItemDBLookup) Lookup(ctx context.Context, code string) (domain.ProductCandidate, error) {
	resp, err := l.Client.LookupUPC(ctx, code)
	if err != nil {
		return domain.ProductCandidate{}, err
	}
	if resp == nil || len(resp.Items) == 0 {
		return domain.ProductCandidate{}, domain.ErrProductNotFound
	}
	return upcitemdb.MapToCandidate(resp.Items[0]), nil
}

// OpenFoodFactsLookup resolves scan codes with Open Food Facts
type OpenFoodFactsLookup struct {
	Client domain.OpenFoodFactsClient
}

func (l OpenFoodFactsLookup) Name() domain.Source { return domain.SourceOpenFoodFacts }

func (l OpenFoodFactsLookup) Lookup(ctx context.Context, code string) (domain.ProductCandidate, error) {
	product, err := l.Client.GetProduct(ctx, code)
	if err != nil {
		return domain.ProductCandidate{}, err
	}
	if product == nil {
		return domain.ProductCandidate{}, domain.ErrProductNotFound
	}
	return openfoodfacts.MapToCandidate(*product), nil
}

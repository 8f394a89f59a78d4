package domain

import (
	"context"
	"time"
)

// ProductLookup is one stage of the resolution chain.
// Lookup returns ErrProductNotFound on a miss; any other error is a transport fault.
type ProductLookup interface {
	Name() Source
	Lookup(ctx context.Context, code string) (ProductCandidate, error)
}

// CatalogReader is the read side of the internal catalog
type CatalogReader interface {
	FindByBarcode(ctx context.Context, barcode string) (*Whiskey, error)
	FindByID(ctx context.Context, id string) (*Whiskey, error)
	Search(ctx context.Context, filter SearchFilter) ([]Whiskey, error)
}

// CatalogWriter inserts new authoritative records
type CatalogWriter interface {
	Insert(ctx context.Context, w *Whiskey) error
}

// CatalogRepository is the full internal catalog
type CatalogRepository interface {
	CatalogReader
	CatalogWriter
}

// ReviewRepository stores whiskey reviews.
// Inserting a review for a whiskey that does not exist yields ErrWhiskeyNotFound.
type ReviewRepository interface {
	InsertReview(ctx context.Context, r *Review) error
	FindReview(ctx context.Context, id string) (*Review, error)
	UpdateReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, id string) error
	ListWhiskeyReviews(ctx context.Context, whiskeyID string, page Page) ([]Review, error)
	ListUserReviews(ctx context.Context, userID string, page Page) ([]Review, error)
}

// FavoriteRepository stores per-user saved whiskeys
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, whiskeyID string, at time.Time) error
	RemoveFavorite(ctx context.Context, userID, whiskeyID string) error
	ListFavorites(ctx context.Context, userID string, page Page) ([]Favorite, error)
}

// UPCClient defines the interface for the UPCitemdb lookup API
type UPCClient interface {
	LookupUPC(ctx context.Context, code string) (*UPCLookupResponse, error)
}

// OpenFoodFactsClient defines the interface for the Open Food Facts product API
type OpenFoodFactsClient interface {
	GetProduct(ctx context.Context, code string) (*OFFProduct, error)
}

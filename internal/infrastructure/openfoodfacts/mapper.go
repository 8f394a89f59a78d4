package openfoodfacts

import (
	"github.com/whiskr/backend/internal/domain"
	"github.com/whiskr/backend/internal/extract"
)

// MapToCandidate converts an Open Food Facts product to a whiskey candidate.
// Brand is taken as-is; the distillery is inferred from the product name.
func MapToCandidate(p domain.OFFProduct) domain.ProductCandidate {
	distillery, _ := extract.Distillery(p.ProductName)

	return domain.NewCandidate(domain.ProductCandidate{
		Name:        p.ProductName,
		Brand:       p.Brands,
		Distillery:  distillery,
		Type:        domain.TypeOther,
		Region:      domain.RegionOther,
		Description: p.GenericName,
		ImageURL:    p.ImageURL,
		Barcode:     p.Code,
	})
}

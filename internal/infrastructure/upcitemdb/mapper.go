package upcitemdb

import (
	"github.com/whiskr/backend/internal/domain"
	"github.com/whiskr/backend/internal/extract"
)

// MapToCandidate converts a UPCitemdb item to a whiskey candidate.
// UPCitemdb has no whiskey taxonomy, so type and region are left to the defaults.
func MapToCandidate(item domain.UPCItem) domain.ProductCandidate {
	brand, _ := extract.Brand(item.Title)
	distillery, _ := extract.Distillery(item.Title)

	return domain.NewCandidate(domain.ProductCandidate{
		Name:        item.Title,
		Brand:       brand,
		Distillery:  distillery,
		Type:        domain.TypeOther,
		Region:      domain.RegionOther,
		Description: item.Description,
		ImageURL:    firstNonEmpty(item.Images...),
		Barcode:     firstNonEmpty(item.UPC, item.EAN, item.ISBN),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

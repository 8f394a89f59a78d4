package domain

import (
	"strings"
	"time"
)

// Placeholder values used when a source leaves a required field empty
const (
	UnknownName       = "Unknown Whiskey"
	UnknownBrand      = "Unknown Brand"
	UnknownDistillery = "Unknown Distillery"
)

// WhiskeyType is the style category of a whiskey
type WhiskeyType string

const (
	TypeSingleMalt  WhiskeyType = "single_malt"
	TypeBlendedMalt WhiskeyType = "blended_malt"
	TypeBlended     WhiskeyType = "blended"
	TypeBourbon     WhiskeyType = "bourbon"
	TypeRye         WhiskeyType = "rye"
	TypeIrish       WhiskeyType = "irish"
	TypeJapanese    WhiskeyType = "japanese"
	TypeOther       WhiskeyType = "other"
)

var whiskeyTypes = map[WhiskeyType]bool{
	TypeSingleMalt:  true,
	TypeBlendedMalt: true,
	TypeBlended:     true,
	TypeBourbon:     true,
	TypeRye:         true,
	TypeIrish:       true,
	TypeJapanese:    true,
	TypeOther:       true,
}

// ParseWhiskeyType maps a free-form value onto a known type, falling back to TypeOther
func ParseWhiskeyType(s string) WhiskeyType {
	t := WhiskeyType(strings.ToLower(strings.TrimSpace(s)))
	if whiskeyTypes[t] {
		return t
	}
	return TypeOther
}

// LookupWhiskeyType reports whether s names a known type
func LookupWhiskeyType(s string) (WhiskeyType, bool) {
	t := WhiskeyType(strings.ToLower(strings.TrimSpace(s)))
	return t, whiskeyTypes[t]
}

// Region is the producing region of a whiskey
type Region string

const (
	RegionIslay       Region = "islay"
	RegionSpeyside    Region = "speyside"
	RegionHighland    Region = "highland"
	RegionLowland     Region = "lowland"
	RegionCampbeltown Region = "campbeltown"
	RegionKentucky    Region = "kentucky"
	RegionTennessee   Region = "tennessee"
	RegionIreland     Region = "ireland"
	RegionJapan       Region = "japan"
	RegionOther       Region = "other"
)

var regions = map[Region]bool{
	RegionIslay:       true,
	RegionSpeyside:    true,
	RegionHighland:    true,
	RegionLowland:     true,
	RegionCampbeltown: true,
	RegionKentucky:    true,
	RegionTennessee:   true,
	RegionIreland:     true,
	RegionJapan:       true,
	RegionOther:       true,
}

// ParseRegion maps a free-form value onto a known region, falling back to RegionOther
func ParseRegion(s string) Region {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	if regions[r] {
		return r
	}
	return RegionOther
}

// LookupRegion reports whether s names a known region
func LookupRegion(s string) (Region, bool) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	return r, regions[r]
}

// ProductCandidate is a normalized, possibly partial, whiskey record.
// Values are built once through NewCandidate and passed by value.
type ProductCandidate struct {
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Distillery  string      `json:"distillery"`
	Type        WhiskeyType `json:"type"`
	Region      Region      `json:"region"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Barcode     string      `json:"barcode,omitempty"`
}

// NewCandidate returns c with every required field filled in.
// Name, Brand and Distillery are never empty and Type/Region are always a known variant.
func NewCandidate(c ProductCandidate) ProductCandidate {
	c.Name = orDefault(c.Name, UnknownName)
	c.Brand = orDefault(c.Brand, UnknownBrand)
	c.Distillery = orDefault(c.Distillery, UnknownDistillery)
	c.Type = ParseWhiskeyType(string(c.Type))
	c.Region = ParseRegion(string(c.Region))
	c.Description = strings.TrimSpace(c.Description)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	c.Barcode = strings.TrimSpace(c.Barcode)
	return c
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// Whiskey is an authoritative catalog record
type Whiskey struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Distillery  string      `json:"distillery"`
	Type        WhiskeyType `json:"type"`
	Region      Region      `json:"region"`
	Age         *int        `json:"age,omitempty"`
	ABV         *float64    `json:"abv,omitempty"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Barcode     string      `json:"barcode,omitempty"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// Derived from reviews; zero when the whiskey has none
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// Candidate projects the catalog record onto the candidate shape, fields taken verbatim
func (w *Whiskey) Candidate() ProductCandidate {
	return ProductCandidate{
		Name:        w.Name,
		Brand:       w.Brand,
		Distillery:  w.Distillery,
		Type:        w.Type,
		Region:      w.Region,
		Description: w.Description,
		ImageURL:    w.ImageURL,
		Barcode:     w.Barcode,
	}
}

// SearchFilter narrows a catalog search. Zero values mean "no constraint".
type SearchFilter struct {
	Query     string
	Type      WhiskeyType
	Region    Region
	MinAge    int
	MaxAge    int
	MinRating float64 // average rating at least this value
	Limit     int
	Offset    int
}

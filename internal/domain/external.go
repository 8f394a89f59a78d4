package domain

// UPCLookupResponse is the body returned by the UPCitemdb lookup endpoint
type UPCLookupResponse struct {
	Code   string    `json:"code"`
	Total  int       `json:"total"`
	Offset int       `json:"offset"`
	Items  []UPCItem `json:"items"`
}

// UPCItem is a single product entry from UPCitemdb
type UPCItem struct {
	EAN         string   `json:"ean"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	UPC         string   `json:"upc"`
	ISBN        string   `json:"isbn"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// OFFProduct is the subset of an Open Food Facts product used for normalization
type OFFProduct struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	Brands      string `json:"brands"`
	GenericName string `json:"generic_name"`
	ImageURL    string `json:"image_url"`
}

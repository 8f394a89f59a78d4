package domain

import "errors"

var (
	// ErrProductNotFound is returned by a lookup stage that has no match for a scan code
	ErrProductNotFound = errors.New("product not found")

	// ErrWhiskeyNotFound is returned when a catalog record does not exist
	ErrWhiskeyNotFound = errors.New("whiskey not found in catalog")

	// ErrDuplicateBarcode is returned when inserting a barcode the catalog already holds
	ErrDuplicateBarcode = errors.New("barcode already in catalog")

	// ErrReviewNotFound is returned when a review does not exist
	ErrReviewNotFound = errors.New("review not found")

	// ErrForbidden is returned when a user changes a record they do not own
	ErrForbidden = errors.New("not allowed to modify this record")

	// ErrInvalidScanCode is returned for an empty scan code
	ErrInvalidScanCode = errors.New("scan code must not be empty")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNotAuthenticated is returned when a catalog write is attempted without a session
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrExternalAPIFailure is returned when an external product API request fails
	ErrExternalAPIFailure = errors.New("external product API request failed")
)

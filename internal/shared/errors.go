package shared

import "fmt"

var (
	// Catalog errors
	ErrValidation        = fmt.Errorf("validation failed")
	ErrDuplicateISBN     = fmt.Errorf("duplicate isbn")
	ErrBookNotFound      = fmt.Errorf("book not found")
	ErrLookupUnavailable = fmt.Errorf("lookup unavailable")
	ErrStorage           = fmt.Errorf("storage error")

	// Client errors
	ErrAPIRequest = fmt.Errorf("api request failed")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

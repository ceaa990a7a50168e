package domain

import "errors"

// Lookup failures. Adapters wrap these with context; callers classify with errors.Is.
var (
	// ErrValidation means the search input was empty or whitespace only, or
	// a history index was out of range.
	ErrValidation = errors.New("invalid search")

	// ErrNotFound means the geocoder returned no matches.
	ErrNotFound = errors.New("location not found")

	// ErrNetwork means a provider request failed or returned a non-success status.
	ErrNetwork = errors.New("weather provider unavailable")
)

package enginerr

import "errors"

// Engine failure kinds. Callers distinguish retryable from non-retryable
// failures with errors.Is against these sentinels; components wrap them
// with fmt.Errorf and %w to add detail.
var (
	// ErrInvalidQuery indicates a malformed address query (empty postcode,
	// unrecognized country code). User-correctable.
	ErrInvalidQuery = errors.New("invalid address query")

	// ErrNotFound indicates the geocoding provider answered successfully
	// but matched nothing. User-correctable, not retryable.
	ErrNotFound = errors.New("address not found")

	// ErrGeocodeUnavailable indicates the geocoding provider failed after
	// internal retries were exhausted. Retryable by the caller.
	ErrGeocodeUnavailable = errors.New("geocoding service unavailable")

	// ErrInvalidFilters indicates malformed search parameters.
	ErrInvalidFilters = errors.New("invalid search filters")

	// ErrInvalidCoordinates indicates coordinates outside the legal
	// latitude/longitude range, which points at a catalog data problem.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrCatalogUnavailable indicates a read failure from the provider or
	// review catalog. Surfaced as-is, never retried internally.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Retryable reports whether the caller may reasonably retry the failed
// operation with the same inputs.
func Retryable(err error) bool {
	return errors.Is(err, ErrGeocodeUnavailable) || errors.Is(err, ErrCatalogUnavailable)
}

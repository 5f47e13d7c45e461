package models

import (
	"fmt"

	"github.com/fieldscout/meridian/internal/enginerr"
)

// AddressQuery is the immutable input to geocoding: a free-text postcode
// plus an ISO country code.
type AddressQuery struct {
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// GeocodeResult is a resolved address: coordinates plus the formatted
// address reported by the geocoding provider.
type GeocodeResult struct {
	Coordinates      Coordinates `json:"coordinates"`
	FormattedAddress string      `json:"formatted_address"`
}

// SearchFilters describes one provider search request. It is an explicit
// request object; the engine holds no per-request state outside of it.
type SearchFilters struct {
	Type          ServiceType  `json:"type"`
	Origin        AddressQuery `json:"origin"`
	MaxDistanceKm float64      `json:"max_distance_km"`
	SpecialtyIDs  []string     `json:"specialty_ids,omitempty"` // empty = no specialty filter
	Page          int          `json:"page"`                    // 1-based
	PageSize      int          `json:"page_size"`
}

// Validate checks the search parameters that are the caller's
// responsibility. Address validity is the Geocoder's concern.
func (f SearchFilters) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown provider type %q", enginerr.ErrInvalidFilters, f.Type)
	}
	if f.MaxDistanceKm <= 0 {
		return fmt.Errorf("%w: max distance must be positive, got %f", enginerr.ErrInvalidFilters, f.MaxDistanceKm)
	}
	if f.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", enginerr.ErrInvalidFilters, f.Page)
	}
	if f.PageSize < 1 {
		return fmt.Errorf("%w: page size must be >= 1, got %d", enginerr.ErrInvalidFilters, f.PageSize)
	}

	return nil
}

// SearchResult is a provider enriched with its distance from the search
// origin. Derived per request, never persisted.
type SearchResult struct {
	Provider
	DistanceKm float64 `json:"distance_km"`
}

// SearchPage is one page of ranked search results together with the total
// number of matches across all pages.
type SearchPage struct {
	Results  []SearchResult `json:"results"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

package service

import (
	"context"
	"errors"
	"sort"

	"github.com/fieldscout/meridian/internal/distance"
	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/models"
)

// Search finds active providers near the origin address, filtered by type,
// radius and specialty, ranked by proximity and rating, and paginated.
//
// The call is all-or-nothing: any geocoder, catalog, or data-integrity
// failure aborts it without partial results. Repeating a search with
// identical filters against an unchanged catalog yields identical
// ordering.
func (ms *MatchingService) Search(ctx context.Context, filters models.SearchFilters) (*models.SearchPage, error) {
	if err := filters.Validate(); err != nil {
		ms.metrics.SearchesTotal.WithLabelValues(searchStatus(err)).Inc()
		return nil, err
	}

	origin, err := ms.geocoder.Resolve(ctx, filters.Origin)
	if err != nil {
		ms.log.ErrorContext(ctx, "Failed to resolve search origin",
			"postcode", filters.Origin.Postcode, "country", filters.Origin.Country, "error", err)
		ms.metrics.SearchesTotal.WithLabelValues(searchStatus(err)).Inc()
		return nil, err
	}

	candidates, err := ms.providers.ListActiveProviders(ctx, filters.Type, filters.SpecialtyIDs)
	if err != nil {
		ms.log.ErrorContext(ctx, "Failed to fetch candidate providers", "type", filters.Type, "error", err)
		ms.metrics.SearchesTotal.WithLabelValues(searchStatus(err)).Inc()
		return nil, err
	}

	matches := make([]models.SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.Active {
			continue
		}
		// The catalog pushes the specialty filter down; the intersection
		// check repeats it so a catalog that ignores the hint still
		// yields correct results.
		if !specialtyOverlap(filters.SpecialtyIDs, candidate.SpecialtyIDs) {
			continue
		}

		distanceKm, errDist := distance.Kilometers(origin.Coordinates, candidate.Coordinates)
		if errDist != nil {
			ms.log.ErrorContext(ctx, "Provider has corrupt coordinates",
				"id", candidate.ID, "error", errDist)
			ms.metrics.SearchesTotal.WithLabelValues(searchStatus(errDist)).Inc()
			return nil, errDist
		}

		if distanceKm > filters.MaxDistanceKm {
			continue
		}

		matches = append(matches, models.SearchResult{Provider: candidate, DistanceKm: distanceKm})
	}

	rank(matches)

	total := len(matches)
	results := paginate(matches, filters.Page, filters.PageSize)

	ms.log.DebugContext(ctx, "Search completed",
		"type", filters.Type, "total", total, "page", filters.Page, "returned", len(results))
	ms.metrics.SearchesTotal.WithLabelValues("success").Inc()

	return &models.SearchPage{
		Results:  results,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// rank orders matches by distance ascending, then rating descending with
// absent ratings last, then provider id ascending for determinism.
func rank(matches []models.SearchResult) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		ri, rj := ratingOrAbsent(matches[i].Rating), ratingOrAbsent(matches[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return matches[i].ID < matches[j].ID
	})
}

// ratingOrAbsent maps a missing rating below any legal rating value.
func ratingOrAbsent(rating *float64) float64 {
	if rating == nil {
		return -1
	}
	return *rating
}

// paginate slices out the 1-based page. Pages past the end yield an empty
// result set, not an error.
func paginate(matches []models.SearchResult, page, pageSize int) []models.SearchResult {
	start := (page - 1) * pageSize
	if start >= len(matches) {
		return []models.SearchResult{}
	}
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end]
}

// specialtyOverlap reports whether the candidate carries at least one of
// the wanted specialties. An empty filter matches everything.
func specialtyOverlap(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

// searchStatus maps an engine failure to a metric label.
func searchStatus(err error) string {
	switch {
	case errors.Is(err, enginerr.ErrInvalidQuery), errors.Is(err, enginerr.ErrInvalidFilters):
		return "invalid"
	case errors.Is(err, enginerr.ErrNotFound):
		return "not_found"
	case errors.Is(err, enginerr.ErrGeocodeUnavailable), errors.Is(err, enginerr.ErrCatalogUnavailable):
		return "unavailable"
	default:
		return "failure"
	}
}

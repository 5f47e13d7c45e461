package repository

import (
	"context"
	"fmt"

	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/models"
)

// ListActiveProviders retrieves every active provider of the given type,
// optionally pre-filtered by specialty. The specialty filter is pushed
// down into SQL: with a non-empty filter a provider qualifies when it has
// at least one of the requested specialties. Inactive providers are never
// returned.
//
// Each record carries its full specialty id set so the caller can apply
// its own intersection check on top.
func (r *Repository) ListActiveProviders(
	ctx context.Context,
	serviceType models.ServiceType,
	specialtyIDs []string,
) ([]models.Provider, error) {
	query := `
		SELECT
			p.id, p.type, p.name,
			COALESCE(p.contact_email, ''), COALESCE(p.contact_phone, ''),
			p.address, p.postcode, p.country,
			p.latitude, p.longitude,
			p.rating, COALESCE(p.price_range, ''),
			COALESCE(array_agg(ps.specialty_id) FILTER (WHERE ps.specialty_id IS NOT NULL), '{}')
		FROM providers p
		LEFT JOIN provider_specialties ps ON ps.provider_id = p.id
		WHERE
			p.active = true
			AND p.type = $1
			AND (
				cardinality($2::text[]) = 0
				OR EXISTS (
					SELECT 1 FROM provider_specialties f
					WHERE f.provider_id = p.id AND f.specialty_id = ANY($2::text[])
				)
			)
		GROUP BY p.id
		ORDER BY p.id ASC;
	`

	if specialtyIDs == nil {
		specialtyIDs = []string{}
	}

	rows, err := r.db.Query(ctx, query, string(serviceType), specialtyIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query active providers: %w", enginerr.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		var provider models.Provider
		var serviceTypeRaw string
		if errScan := rows.Scan(
			&provider.ID, &serviceTypeRaw, &provider.Name,
			&provider.ContactEmail, &provider.ContactPhone,
			&provider.Address, &provider.Postcode, &provider.Country,
			&provider.Coordinates.Latitude, &provider.Coordinates.Longitude,
			&provider.Rating, &provider.PriceRange,
			&provider.SpecialtyIDs,
		); errScan != nil {
			return nil, fmt.Errorf("%w: failed to scan provider row: %w", enginerr.ErrCatalogUnavailable, errScan)
		}
		provider.Type = models.ServiceType(serviceTypeRaw)
		provider.Active = true
		r.log.DebugContext(ctx, "Candidate provider fetched", "id", provider.ID, "name", provider.Name)
		providers = append(providers, provider)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read provider rows: %w", enginerr.ErrCatalogUnavailable, err)
	}

	return providers, nil
}

// CountByType returns the number of active providers of the given type.
func (r *Repository) CountByType(ctx context.Context, serviceType models.ServiceType) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM providers
		WHERE active = true AND type = $1;
	`

	var count int
	if err := r.db.QueryRow(ctx, query, string(serviceType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count providers by type: %w", enginerr.ErrCatalogUnavailable, err)
	}

	return count, nil
}

// ListSpecialties returns the specialty tags available for the given
// provider type: tractor brands for inspectors, cargo types for hauliers.
func (r *Repository) ListSpecialties(
	ctx context.Context,
	serviceType models.ServiceType,
) ([]models.Specialty, error) {
	query := `
		SELECT id, name
		FROM specialties
		WHERE service_type = $1
		ORDER BY name ASC;
	`

	rows, err := r.db.Query(ctx, query, string(serviceType))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query specialties: %w", enginerr.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var specialties []models.Specialty
	for rows.Next() {
		var specialty models.Specialty
		if errScan := rows.Scan(&specialty.ID, &specialty.Name); errScan != nil {
			return nil, fmt.Errorf("%w: failed to scan specialty row: %w", enginerr.ErrCatalogUnavailable, errScan)
		}
		specialties = append(specialties, specialty)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read specialty rows: %w", enginerr.ErrCatalogUnavailable, err)
	}

	return specialties, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/fieldscout/meridian/internal/enginerr"
)

// ListAllRatings returns every review rating across all providers.
func (r *Repository) ListAllRatings(ctx context.Context) ([]float64, error) {
	query := `
		SELECT rating
		FROM reviews;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query review ratings: %w", enginerr.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var ratings []float64
	for rows.Next() {
		var rating float64
		if errScan := rows.Scan(&rating); errScan != nil {
			return nil, fmt.Errorf("%w: failed to scan rating row: %w", enginerr.ErrCatalogUnavailable, errScan)
		}
		ratings = append(ratings, rating)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read rating rows: %w", enginerr.ErrCatalogUnavailable, err)
	}

	return ratings, nil
}

// CountPendingModeration returns the number of reviews awaiting
// moderation. A catalog without moderation data simply has no matching
// rows and reports zero.
func (r *Repository) CountPendingModeration(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reviews
		WHERE moderation_status = 'pending';
	`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count pending reviews: %w", enginerr.ErrCatalogUnavailable, err)
	}

	return count, nil
}

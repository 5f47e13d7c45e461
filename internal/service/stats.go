package service

import (
	"context"

	"github.com/fieldscout/meridian/internal/models"
	"golang.org/x/sync/errgroup"
)

// Stats computes the dashboard snapshot by fanning out independent
// catalog reads and joining them. If any branch fails, the whole call
// fails; results from the other branches are discarded rather than
// partially reported, since a silent zero would misrepresent fleet
// health.
//
// averageRating is the mean over all review ratings; with zero reviews it
// is 0 by convention.
func (ms *MatchingService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		inspectors int
		hauliers   int
		ratings    []float64
		pending    int
	)

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		var err error
		inspectors, err = ms.providers.CountByType(grpCtx, models.ServiceTypeInspector)
		return err
	})
	grp.Go(func() error {
		var err error
		hauliers, err = ms.providers.CountByType(grpCtx, models.ServiceTypeHaulier)
		return err
	})
	grp.Go(func() error {
		var err error
		ratings, err = ms.reviews.ListAllRatings(grpCtx)
		return err
	})
	grp.Go(func() error {
		var err error
		pending, err = ms.reviews.CountPendingModeration(grpCtx)
		return err
	})

	if err := grp.Wait(); err != nil {
		ms.log.ErrorContext(ctx, "Failed to compute dashboard stats", "error", err)
		ms.metrics.StatsRefreshes.WithLabelValues("failure").Inc()
		return nil, err
	}

	var average float64
	if len(ratings) > 0 {
		var sum float64
		for _, rating := range ratings {
			sum += rating
		}
		average = sum / float64(len(ratings))
	}

	ms.metrics.StatsRefreshes.WithLabelValues("success").Inc()

	return &models.DashboardStats{
		TotalInspectors: inspectors,
		TotalHauliers:   hauliers,
		AverageRating:   average,
		PendingReviews:  pending,
	}, nil
}

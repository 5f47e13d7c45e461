package service_test

import (
	"testing"

	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStats_AggregatesAllCounters(t *testing.T) {
	t.Parallel()
	svc, _, providers, reviews := newTestService(t)
	ctx := t.Context()

	providers.On("CountByType", mock.Anything, models.ServiceTypeInspector).Return(12, nil).Once()
	providers.On("CountByType", mock.Anything, models.ServiceTypeHaulier).Return(7, nil).Once()
	reviews.On("ListAllRatings", mock.Anything).Return([]float64{5, 4, 3}, nil).Once()
	reviews.On("CountPendingModeration", mock.Anything).Return(2, nil).Once()

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalInspectors)
	assert.Equal(t, 7, stats.TotalHauliers)
	assert.InEpsilon(t, 4.0, stats.AverageRating, 0.0001)
	assert.Equal(t, 2, stats.PendingReviews)
}

func TestStats_ZeroReviewsYieldZeroAverage(t *testing.T) {
	t.Parallel()
	svc, _, providers, reviews := newTestService(t)
	ctx := t.Context()

	providers.On("CountByType", mock.Anything, models.ServiceTypeInspector).Return(0, nil).Once()
	providers.On("CountByType", mock.Anything, models.ServiceTypeHaulier).Return(0, nil).Once()
	reviews.On("ListAllRatings", mock.Anything).Return([]float64{}, nil).Once()
	reviews.On("CountPendingModeration", mock.Anything).Return(0, nil).Once()

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
}

func TestStats_AnyBranchFailureFailsTheCall(t *testing.T) {
	t.Parallel()
	svc, _, providers, reviews := newTestService(t)
	ctx := t.Context()

	// Every branch still runs; only the pending-moderation count fails,
	// and that must sink the whole snapshot.
	providers.On("CountByType", mock.Anything, models.ServiceTypeInspector).Return(12, nil).Once()
	providers.On("CountByType", mock.Anything, models.ServiceTypeHaulier).Return(7, nil).Once()
	reviews.On("ListAllRatings", mock.Anything).Return([]float64{5}, nil).Once()
	reviews.On("CountPendingModeration", mock.Anything).Return(0, enginerr.ErrCatalogUnavailable).Once()

	stats, err := svc.Stats(ctx)

	require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
	assert.Nil(t, stats)
}

package service

import (
	"context"
	"log/slog"

	"github.com/fieldscout/meridian/internal/metrics"
	"github.com/fieldscout/meridian/internal/models"
	"github.com/fieldscout/meridian/internal/repository"
)

// Geocoder resolves an address query into coordinates. Implemented by
// geocoding.Resolver; abstracted here so tests can substitute it.
type Geocoder interface {
	Resolve(ctx context.Context, query models.AddressQuery) (*models.GeocodeResult, error)
}

// MatchingService is the engine core: it orchestrates the geocoder, the
// provider catalog, and the distance calculator into ranked search
// results, and aggregates fleet-wide dashboard statistics.
type MatchingService struct {
	log       *slog.Logger               // Logger for logging service activities
	geocoder  Geocoder                   // Resolver for the search origin address
	providers repository.ProviderCatalog // Read-only provider catalog
	reviews   repository.ReviewCatalog   // Read-only review catalog
	metrics   *metrics.Metrics           // Metrics for tracking service performance
}

// NewMatchingService creates a new instance of MatchingService. It takes
// a logger, a geocoder, the provider and review catalogs, and metrics for
// monitoring. It returns a pointer to the newly created MatchingService.
func NewMatchingService(
	log *slog.Logger,
	geocoder Geocoder,
	providers repository.ProviderCatalog,
	reviews repository.ReviewCatalog,
	appMetrics *metrics.Metrics,
) *MatchingService {
	return &MatchingService{
		log:       log,
		geocoder:  geocoder,
		providers: providers,
		reviews:   reviews,
		metrics:   appMetrics,
	}
}

// Specialties returns the filter tags available for the given provider
// type, for populating search filter inputs.
func (ms *MatchingService) Specialties(
	ctx context.Context,
	serviceType models.ServiceType,
) ([]models.Specialty, error) {
	return ms.providers.ListSpecialties(ctx, serviceType)
}

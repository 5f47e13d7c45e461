package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fieldscout/meridian/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given API
// client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves the provided address using the Google Maps Geocoding
// API. A successful response with zero results maps to ErrNoMatch so the
// caller can tell "bad address" apart from a service failure.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNoMatch
	}

	top := geocodeResponse[0]

	return &models.GeocodeResult{
		Coordinates: models.Coordinates{
			Latitude:  top.Geometry.Location.Lat,
			Longitude: top.Geometry.Location.Lng,
		},
		FormattedAddress: top.FormattedAddress,
	}, nil
}

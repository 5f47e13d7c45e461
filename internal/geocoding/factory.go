package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOpenCage represents the OpenCage geocoding provider.
	ProviderTypeOpenCage ProviderType = "opencage"
	// ProviderTypeNominatim represents the OpenStreetMap Nominatim provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google and OpenCage providers)
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided
// configuration. It applies the Factory pattern to decouple provider
// instantiation from business logic.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (requires API key)
// - "opencage": OpenCage Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
//
// Returns an error if the provider type is unsupported or if provider
// creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOpenCage:
		return newOpenCageProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

// newOpenCageProvider creates an OpenCage geocoding provider.
func newOpenCageProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for OpenCage provider")
	}

	if config.RateLimit == 0 {
		config.RateLimit = 1
		config.Logger.Warn("Rate limit for OpenCage API not set, set a default value", "value", config.RateLimit)
	}

	return NewOpenCageProvider(config.APIKey, config.RateLimit, config.Logger), nil
}

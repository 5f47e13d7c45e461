package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fieldscout/meridian/internal/models"
	"golang.org/x/time/rate"
)

// OpenCageBaseURL -- OpenCage API base URL.
const OpenCageBaseURL = "https://api.opencagedata.com/geocode/v1/json"

// OpenCageProvider implements geocoding using the OpenCage API.
type OpenCageProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the OpenCage API
	apiKey  string        // API key with geocoding access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Common errors for OpenCage provider.
var (
	ErrOpenCageEmptyAddress = errors.New("opencage provider got empty address")
	ErrOpenCageUnauthorized = errors.New("opencage API unauthorized (invalid API key)")
)

// OpenCage API response (simplified for the geocoding use-case).
type openCageResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
		Formatted string `json:"formatted"`
	} `json:"results"`
}

// NewOpenCageProvider creates a new OpenCage geocoding provider.
func NewOpenCageProvider(apiKey string, rateLimit int, log *slog.Logger) *OpenCageProvider {
	const timeout = 10

	return &OpenCageProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: OpenCageBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewOpenCageProviderWithClient allows injecting a custom HTTP client.
func NewOpenCageProviderWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OpenCageProvider {
	return &OpenCageProvider{
		client:  client,
		baseURL: OpenCageBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts an address into geographic coordinates using the
// OpenCage API.
func (op *OpenCageProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	// Rate limit
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	op.log.DebugContext(ctx, "Geocoding using OpenCage", "address", address)

	if address == "" {
		return nil, ErrOpenCageEmptyAddress
	}

	reqURL, err := url.Parse(op.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("key", op.apiKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrOpenCageUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		op.log.ErrorContext(ctx, "OpenCage API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("opencage API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result openCageResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode opencage response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, ErrNoMatch
	}

	top := result.Results[0]

	op.log.InfoContext(ctx, "OpenCage found result",
		"address", address, "lat", top.Geometry.Lat, "lon", top.Geometry.Lng)

	return &models.GeocodeResult{
		Coordinates: models.Coordinates{
			Latitude:  top.Geometry.Lat,
			Longitude: top.Geometry.Lng,
		},
		FormattedAddress: top.Formatted,
	}, nil
}

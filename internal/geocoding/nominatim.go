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
	"strconv"
	"time"

	"github.com/fieldscout/meridian/internal/models"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim API. This is a free geocoding service with usage limits
// (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// nominatimResponse represents the JSON response from the Nominatim API.
type nominatimResponse struct {
	Lat         string `json:"lat"`          // Latitude as string
	Lon         string `json:"lon"`          // Longitude as string
	DisplayName string `json:"display_name"` // Human-readable address
}

// ErrNominatimInvalidCoords is returned when Nominatim responds with
// coordinates that cannot be parsed.
var ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: nominatimBaseURL,
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "Meridian-Provider-Matching/1.0 (https://github.com/fieldscout/meridian)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   nominatimBaseURL,
		log:       log,
		userAgent: "Meridian-Provider-Matching/1.0 (https://github.com/fieldscout/meridian)",
	}
}

// Geocode converts an address to geographic coordinates using the
// Nominatim API. It respects Nominatim's usage policy by including a
// User-Agent header.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1") // Only need the top result
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	np.log.DebugContext(ctx, "Nominatim found result", "lat", lat, "lon", lon)

	formatted := results[0].DisplayName
	if formatted == "" {
		formatted = address
	}

	return &models.GeocodeResult{
		Coordinates: models.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
		FormattedAddress: formatted,
	}, nil
}

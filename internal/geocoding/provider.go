package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/fieldscout/meridian/internal/models"
)

// Provider is an interface that defines a method for geocoding a free-text
// address. The Geocode method takes a context and an address string as
// input, and returns the resolved result and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoMatch is returned when the upstream service answered successfully
// but found no result for the address. It is distinct from transport or
// service failures because it is not retryable.
var ErrNoMatch = errors.New("no geocoding match for address")

package geocoding_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/fieldscout/meridian/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func testLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(100), 100)
}

func TestOpenCageProvider_Geocode(t *testing.T) {
	logger := slog.Default()
	ctx := t.Context()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "api.opencagedata.com")
				assert.Equal(t, "AB1 2CD, GB", req.URL.Query().Get("q"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, "test-key", req.URL.Query().Get("key"))

				responseBody := `{"results":[{"geometry":{"lat":57.1497,"lng":-2.0943},"formatted":"Aberdeen AB1 2CD, United Kingdom"}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewOpenCageProviderWithClient(mockClient, "test-key", testLimiter(), logger)
		result, err := provider.Geocode(ctx, "AB1 2CD, GB")

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.InEpsilon(t, 57.1497, result.Coordinates.Latitude, 0.0001)
		assert.InEpsilon(t, -2.0943, result.Coordinates.Longitude, 0.0001)
		assert.Equal(t, "Aberdeen AB1 2CD, United Kingdom", result.FormattedAddress)
	})

	t.Run("empty results map to no match", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"results":[]}`)),
				}, nil
			},
		}

		provider := geocoding.NewOpenCageProviderWithClient(mockClient, "test-key", testLimiter(), logger)
		result, err := provider.Geocode(ctx, "ZZ9 9ZZ, GB")

		require.Nil(t, result)
		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusUnauthorized,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		provider := geocoding.NewOpenCageProviderWithClient(mockClient, "bad-key", testLimiter(), logger)
		_, err := provider.Geocode(ctx, "AB1 2CD, GB")

		require.ErrorIs(t, err, geocoding.ErrOpenCageUnauthorized)
	})

	t.Run("server error is not a no-match", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadGateway,
					Body:       io.NopCloser(bytes.NewBufferString(`upstream broke`)),
				}, nil
			},
		}

		provider := geocoding.NewOpenCageProviderWithClient(mockClient, "test-key", testLimiter(), logger)
		_, err := provider.Geocode(ctx, "AB1 2CD, GB")

		require.Error(t, err)
		require.NotErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("empty address", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("no request expected for empty address")
				return nil, nil
			},
		}

		provider := geocoding.NewOpenCageProviderWithClient(mockClient, "test-key", testLimiter(), logger)
		_, err := provider.Geocode(ctx, "")

		require.ErrorIs(t, err, geocoding.ErrOpenCageEmptyAddress)
	})
}

package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/metrics"
	"github.com/fieldscout/meridian/internal/models"
	"golang.org/x/sync/singleflight"
)

// maxGeocodeRetries bounds the internal retry policy around one outbound
// lookup. Exhaustion surfaces as ErrGeocodeUnavailable.
const maxGeocodeRetries = 2

// Resolver is the geocoding front door: it validates and normalizes
// address queries, serves repeat lookups from an LRU cache, collapses
// concurrent lookups for the same key into a single outbound call, and
// retries transient upstream failures with exponential backoff.
//
// The cache is the only mutable shared state. It is only written after a
// fully successful lookup, so failed or canceled flights never leave a
// partial entry behind.
type Resolver struct {
	log          *slog.Logger
	provider     Provider
	providerName string
	metrics      *metrics.Metrics
	cache        *lruCache
	group        singleflight.Group
	retryInitial time.Duration
}

// NewResolver creates a Resolver around the given provider. providerName
// labels the provider in metrics; cacheSize bounds the LRU cache.
func NewResolver(
	log *slog.Logger,
	provider Provider,
	providerName string,
	appMetrics *metrics.Metrics,
	cacheSize int,
) *Resolver {
	const defaultRetryInitial = 500 * time.Millisecond

	return &Resolver{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      appMetrics,
		cache:        newLRUCache(cacheSize),
		retryInitial: defaultRetryInitial,
	}
}

// Resolve turns a (postcode, country) query into coordinates plus a
// formatted address. Concurrent callers for the same normalized key share
// one outbound call and observe the same result or the same failure.
func (r *Resolver) Resolve(ctx context.Context, query models.AddressQuery) (*models.GeocodeResult, error) {
	key, freeText, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	if cached, ok := r.cache.get(key); ok {
		r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	r.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	ch := r.group.DoChan(key, func() (any, error) {
		return r.lookup(ctx, key, freeText)
	})

	select {
	case <-ctx.Done():
		// The shared flight keeps running for the remaining waiters;
		// this caller just stops waiting for it.
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		result, ok := res.Val.(models.GeocodeResult)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected flight result type", enginerr.ErrGeocodeUnavailable)
		}
		return &result, nil
	}
}

// lookup performs the cache-miss path: one outbound geocode with bounded
// exponential retry, caching only on success.
func (r *Resolver) lookup(ctx context.Context, key, freeText string) (models.GeocodeResult, error) {
	// A waiter that lost the race to an earlier flight may land here
	// right after that flight committed; re-check before going outbound.
	if cached, ok := r.cache.get(key); ok {
		return cached, nil
	}

	var result *models.GeocodeResult
	operation := func() error {
		startTime := time.Now()
		res, err := r.provider.Geocode(ctx, freeText)
		r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())

		if err != nil {
			if errors.Is(err, ErrNoMatch) {
				r.metrics.GeocodeRequests.WithLabelValues(r.providerName, "empty").Inc()
				return backoff.Permanent(fmt.Errorf("%w: %s", enginerr.ErrNotFound, freeText))
			}
			r.metrics.GeocodeRequests.WithLabelValues(r.providerName, "error").Inc()
			r.log.WarnContext(ctx, "Geocoding attempt failed", "address", freeText, "error", err)
			return err
		}

		r.metrics.GeocodeRequests.WithLabelValues(r.providerName, "success").Inc()
		result = res
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.retryInitial
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, maxGeocodeRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, enginerr.ErrNotFound) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return models.GeocodeResult{}, err
		}
		return models.GeocodeResult{}, fmt.Errorf("%w: %v", enginerr.ErrGeocodeUnavailable, err)
	}

	r.cache.put(key, *result)

	return *result, nil
}

// normalizeQuery validates the address query and derives the cache key
// and the free-text form sent upstream. Trimming and case-folding keep
// cosmetically different inputs on the same cache entry.
func normalizeQuery(query models.AddressQuery) (string, string, error) {
	postcode := strings.ToUpper(strings.TrimSpace(query.Postcode))
	country := strings.ToUpper(strings.TrimSpace(query.Country))

	if postcode == "" {
		return "", "", fmt.Errorf("%w: postcode is empty", enginerr.ErrInvalidQuery)
	}
	if !validCountryCode(country) {
		return "", "", fmt.Errorf("%w: country %q is not a two-letter ISO code", enginerr.ErrInvalidQuery, query.Country)
	}

	return postcode + "|" + country, postcode + ", " + country, nil
}

func validCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

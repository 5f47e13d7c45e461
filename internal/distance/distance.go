package distance

import (
	"math"

	"github.com/fieldscout/meridian/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Kilometers returns the great-circle distance between two points using
// the haversine formula. It rejects out-of-range coordinates with
// ErrInvalidCoordinates; everything else is a total, pure computation.
func Kilometers(a, b models.Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + sinLon*sinLon*math.Cos(lat1)*math.Cos(lat2)
	// Float drift can push h a hair outside [0, 1] for antipodal or
	// near-identical points; clamp before the square roots.
	h = math.Min(math.Max(h, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c, nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

package models

import (
	"fmt"

	"github.com/fieldscout/meridian/internal/enginerr"
)

// Coordinates represents a geographical point in degrees (WGS 84).
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point, -90..90.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point, -180..180.
}

// Validate checks that the point lies within the legal latitude/longitude
// range. Out-of-range values indicate corrupt catalog data.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f out of range [-90, 90]", enginerr.ErrInvalidCoordinates, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f out of range [-180, 180]", enginerr.ErrInvalidCoordinates, c.Longitude)
	}

	return nil
}

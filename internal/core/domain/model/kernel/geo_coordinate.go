package kernel

import (
	"errors"
	"fmt"

	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

const (
	// LatitudeMin is the southern bound of a valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northern bound of a valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the western bound of a valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the eastern bound of a valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoCoordinateIsNotConstructed is returned when using a zero-value GeoCoordinate.
var ErrGeoCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"geo coordinate must be created via NewGeoCoordinate constructor")

// GeoCoordinate is a WGS84 latitude/longitude pair, used as the delivery location
// of an order. Both bounds are inclusive.
//
// Example:
//
//	loc, err := kernel.NewGeoCoordinate(12.9716, 77.5946)
//	if err != nil {
//	    // latitude or longitude out of range
//	}
type GeoCoordinate struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoCoordinate validates latitude ∈ [-90, 90] and longitude ∈ [-180, 180].
// Both violations are reported together.
func NewGeoCoordinate(latitude, longitude float64) (GeoCoordinate, error) {
	c := GeoCoordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLatitude(latitude), c.setLongitude(longitude)); err != nil {
		return GeoCoordinate{}, err
	}

	return c, nil
}

// Validate checks that the coordinate was built by its constructor.
func (c GeoCoordinate) Validate() error {
	return c.guard.Validate(ErrGeoCoordinateIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (c GeoCoordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in degrees.
func (c GeoCoordinate) Longitude() float64 {
	return c.longitude
}

// String implements fmt.Stringer.
func (c GeoCoordinate) String() string {
	return fmt.Sprintf("GeoCoordinate(%.6f,%.6f)", c.latitude, c.longitude)
}

func (c *GeoCoordinate) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	c.latitude = latitude
	return nil
}

func (c *GeoCoordinate) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	c.longitude = longitude
	return nil
}

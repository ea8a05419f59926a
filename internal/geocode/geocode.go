package geocode

import (
	"context"
	"errors"
)

// ErrUnresolved means the service answered but carried no usable
// door-level component for the coordinate.
var ErrUnresolved = errors.New("address unresolved")

// ReverseGeocoder resolves a coordinate to a raw door string.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, longitude, latitude float64) (string, error)
}

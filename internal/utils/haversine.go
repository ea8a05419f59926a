package utils

import (
	"errors"
	"math"
)

const earthRadiusM = 6371000.0

// ErrBadCoordinate is returned when a coordinate component is NaN or infinite.
var ErrBadCoordinate = errors.New("coordinate is not a finite number")

// HaversineM returns the great-circle distance in meters between two
// points given in degrees. Non-finite input is an error, never a zero.
func HaversineM(lat1, lon1, lat2, lon2 float64) (float64, error) {
	for _, v := range []float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrBadCoordinate
		}
	}

	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	lat1R := degreesToRadians(lat1)
	lat2R := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1R)*math.Cos(lat2R)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c, nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

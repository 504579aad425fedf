// Package geodesy provides the geodesic-distance collaborator used by the
// travel matrix builder.
package geodesy

import "github.com/golang/geo/s2"

// earthRadiusKM is the IUGG mean earth radius.
const earthRadiusKM = 6371.0088

// DistanceFunc returns the distance in kilometers between two
// (latitude, longitude) pairs in degrees. Injectable so tests and callers
// can substitute a fixed-distance model.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// GreatCircleKM computes the great-circle distance in kilometers on the
// mean-radius sphere.
func GreatCircleKM(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusKM
}

// Package geo provides the geometric primitives of the road-graph pipeline:
// great-circle distance, bounding-box validation and tile splitting.
//
// All coordinates are signed decimal degrees (WGS84). Distances are returned
// in kilometers.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm returns the great-circle distance in kilometers between
// (lat1, lon1) and (lat2, lon2).
//
// The atan2 form keeps meter-level precision for street-scale spans and
// stays well-conditioned for antipodal points (≈20015 km). Identical points
// yield exactly 0.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := ToRadians(lat2 - lat1)
	dLon := ToRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(ToRadians(lat1))*math.Cos(ToRadians(lat2))*sinLon*sinLon
	a = math.Min(1, a)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

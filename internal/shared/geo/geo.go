package geo

import "math"

const earthRadiusKm = 6371.0

// LatLng is a WGS84 coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	if a > 1 {
		// rounding can push a just past 1 for antipodal points
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceKm returns the distance between two optional coordinates. The
// second return value is false when either coordinate is absent; absence is
// never reported as a zero distance.
func DistanceKm(a, b *LatLng) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng), true
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

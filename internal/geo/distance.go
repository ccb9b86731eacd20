package geo

import "math"

// EarthRadiusKm is Earth's radius in kilometers for Haversine calculation.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair. A nil *Point means the location is
// unknown; a partial coordinate pair is never represented here (callers
// construct a Point only when both coordinates are present).
type Point struct {
	Lat float64
	Lng float64
}

// NewPoint builds a Point from optional coordinates. It returns nil unless
// both latitude and longitude are present, so a partial pair counts as no
// location at all.
func NewPoint(lat, lng *float64) *Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &Point{Lat: *lat, Lng: *lng}
}

// HaversineKm calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceKm returns the distance between two optional points in kilometers.
// The boolean reports whether the distance is defined; it is false when
// either point is unknown, so callers apply fallback policy instead of
// treating an unknown location as nearest.
func DistanceKm(a, b *Point) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng), true
}

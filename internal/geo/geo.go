// Package geo holds the distance math used by location-aware search.
// Distances are great-circle kilometers on a spherical Earth, which is
// accurate to well under one percent at city scale.
package geo

import "math"

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371.0088

// DistanceKm returns the haversine distance between two WGS84 points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// BoundingBox is a lat/lng rectangle guaranteed to contain every point
// within some radius of its center. It is a coarse SQL prefilter; exact
// membership still requires DistanceKm.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox computes the box around (lat, lng) for the given radius.
// Near the poles the longitude span degenerates, so it widens to the full
// range rather than clipping results.
func NewBoundingBox(lat, lng, radiusKm float64) BoundingBox {
	latDelta := radiusKm / earthRadiusKm * 180 / math.Pi

	box := BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat <= 1e-9 {
		box.MinLng = -180
		box.MaxLng = 180
		return box
	}

	lngDelta := latDelta / cosLat
	if lngDelta >= 180 {
		box.MinLng = -180
		box.MaxLng = 180
		return box
	}

	box.MinLng = lng - lngDelta
	box.MaxLng = lng + lngDelta
	// A box crossing the antimeridian cannot stay a single BETWEEN
	// range, so it widens to the full span instead of clipping the far
	// side.
	if box.MinLng < -180 || box.MaxLng > 180 {
		box.MinLng = -180
		box.MaxLng = 180
	}
	return box
}

// Contains reports whether the point falls inside the rectangle.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

package geodesy

import (
	"math"

	"geodist/pkg/geom"
)

// Sphere solves on a spherical earth using the closed-form great-circle
// (haversine) formula.
type Sphere struct {
	radius float64
}

// NewSphere fails unless radius is a positive, finite meter value.
func NewSphere(radius float64) (Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Sphere{}, &geom.ValidationError{Field: "radius", Value: radius, Min: 0, Max: math.Inf(1)}
	}
	return Sphere{radius: radius}, nil
}

// DefaultSphere returns the mean-radius sphere used when no explicit model
// is supplied.
func DefaultSphere() Sphere {
	return Sphere{radius: MeanEarthRadiusMeters}
}

// Radius returns the sphere radius in meters.
func (s Sphere) Radius() float64 { return s.radius }

// Solve computes the great-circle distance and bearings from a to b.
func (s Sphere) Solve(a, b geom.Point) (Solution, error) {
	if err := validatePair(a, b); err != nil {
		return Solution{}, err
	}
	if a == b {
		return Solution{}, nil
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Clamp against floating error pushing h outside [0, 1].
	h = math.Min(math.Max(h, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	initial := normalizeBearing(forwardAzimuth(lat1, lat2, dLon))
	// Final bearing: the back azimuth at b, reversed.
	final := normalizeBearing(forwardAzimuth(lat2, lat1, -dLon) + 180)

	return Solution{
		Distance:       geom.Distance(s.radius * c),
		InitialBearing: initial,
		FinalBearing:   final,
	}, nil
}

// forwardAzimuth returns the great-circle azimuth in degrees at the first
// point, in (-180, 180].
func forwardAzimuth(lat1, lat2, dLon float64) float64 {
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x) * 180 / math.Pi
}

// PruneBound reports the sphere itself: the model is already spherical and
// its latitudes are geocentric.
func (s Sphere) PruneBound() PruneBound {
	return PruneBound{MinRadiusMeters: s.radius, MaxRadiusMeters: s.radius}
}

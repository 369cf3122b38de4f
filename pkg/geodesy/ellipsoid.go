package geodesy

import (
	"math"

	"github.com/tidwall/geodesic"

	"geodist/pkg/geom"
)

// WGS84 parameters.
const (
	wgs84EquatorialRadiusMeters = 6_378_137.0
	wgs84Flattening             = 1 / 298.257223563
)

// Ellipsoid solves the geodesic inverse problem on a reference ellipsoid
// using Karney's method.
type Ellipsoid struct {
	solver     *geodesic.Ellipsoid
	equatorial float64
	flattening float64
}

// NewEllipsoid fails unless the equatorial radius and the derived polar
// radius a*(1-f) are positive and finite.
func NewEllipsoid(equatorialRadius, flattening float64) (*Ellipsoid, error) {
	if !(equatorialRadius > 0) || math.IsInf(equatorialRadius, 1) {
		return nil, &geom.ValidationError{Field: "radius", Value: equatorialRadius, Min: 0, Max: math.Inf(1)}
	}
	polar := equatorialRadius * (1 - flattening)
	if !(polar > 0) || math.IsInf(polar, 1) {
		return nil, &geom.ValidationError{Field: "flattening", Value: flattening, Min: math.Inf(-1), Max: 1}
	}
	return &Ellipsoid{
		solver:     geodesic.NewEllipsoid(equatorialRadius, flattening),
		equatorial: equatorialRadius,
		flattening: flattening,
	}, nil
}

// WGS84 returns the standard WGS84 reference ellipsoid.
func WGS84() *Ellipsoid {
	e, err := NewEllipsoid(wgs84EquatorialRadiusMeters, wgs84Flattening)
	if err != nil {
		// Constants above are valid; unreachable.
		panic(err)
	}
	return e
}

// EquatorialRadius returns the semi-major axis in meters.
func (e *Ellipsoid) EquatorialRadius() float64 { return e.equatorial }

// Flattening returns the ellipsoid flattening.
func (e *Ellipsoid) Flattening() float64 { return e.flattening }

// Solve computes the ellipsoidal geodesic distance and bearings from a to b.
func (e *Ellipsoid) Solve(a, b geom.Point) (Solution, error) {
	if err := validatePair(a, b); err != nil {
		return Solution{}, err
	}
	if a == b {
		return Solution{}, nil
	}

	var meters, azi1, azi2 float64
	e.solver.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, &azi1, &azi2)

	return Solution{
		Distance:       geom.Distance(meters),
		InitialBearing: normalizeBearing(azi1),
		FinalBearing:   normalizeBearing(azi2),
	}, nil
}

// PruneBound reports the sphere inscribed in the ellipsoid, the largest
// radius of curvature, and the worst-case geodetic-to-geocentric latitude
// deviation, max atan((1-(1-f)^2) / (2*(1-f))).
func (e *Ellipsoid) PruneBound() PruneBound {
	polar := e.equatorial * (1 - e.flattening)
	minR := math.Min(e.equatorial, polar)
	maxR := math.Max(e.equatorial, polar)
	f1 := 1 - e.flattening
	slack := math.Abs(math.Atan((1 - f1*f1) / (2 * f1)))
	return PruneBound{
		MinRadiusMeters: minR,
		MaxRadiusMeters: maxR * maxR / minR,
		LatSlackRad:     slack,
	}
}

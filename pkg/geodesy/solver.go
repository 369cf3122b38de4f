// Package geodesy computes geodesic distances and bearings between
// validated points, on either a spherical or an ellipsoidal earth model.
// Every operation is a pure function of its inputs; solvers are immutable
// and safe to share across goroutines.
package geodesy

import (
	"math"

	"geodist/pkg/geom"
)

// MeanEarthRadiusMeters is the WGS84 mean radius (2a+b)/3 rounded to 0.1 m,
// used as the default sphere when no explicit model is supplied.
const MeanEarthRadiusMeters = 6_371_008.8

// Solution carries the outcome of a single geodesic solve. Distance and
// bearings come out of the same solution, so the two can never disagree for
// a given input pair. Bearings are degrees clockwise from true north,
// normalized to [0, 360).
//
// For identical endpoints the bearings are undefined; solvers report the
// documented degenerate pair 0, 0 with an exactly zero distance.
type Solution struct {
	Distance       geom.Distance
	InitialBearing float64
	FinalBearing   float64
}

// PruneBound is a conservative spherical view of an earth model: a sphere of
// MinRadiusMeters fits entirely inside the model, MaxRadiusMeters bounds its
// radius of curvature from above, and geodetic latitudes deviate from
// geocentric ones by at most LatSlackRad radians. Spatial search and
// Hausdorff pruning derive admissible distance bounds from it.
type PruneBound struct {
	MinRadiusMeters float64
	MaxRadiusMeters float64
	LatSlackRad     float64
}

// Solver solves the geodesic inverse problem on a fixed earth model.
type Solver interface {
	Solve(a, b geom.Point) (Solution, error)
	PruneBound() PruneBound
}

// Distance returns the geodesic distance between a and b under s.
func Distance(a, b geom.Point, s Solver) (geom.Distance, error) {
	sol, err := s.Solve(a, b)
	if err != nil {
		return 0, err
	}
	return sol.Distance, nil
}

// Bearings returns the initial and final bearing from a to b in degrees,
// normalized to [0, 360).
func Bearings(a, b geom.Point, s Solver) (initial, final float64, err error) {
	sol, err := s.Solve(a, b)
	if err != nil {
		return 0, 0, err
	}
	return sol.InitialBearing, sol.FinalBearing, nil
}

// Distance3D combines the surface distance with the altitude delta as the
// hypotenuse of the two.
func Distance3D(a, b geom.Point3D, s Solver) (geom.Distance, error) {
	surface, err := Distance(a.Point, b.Point, s)
	if err != nil {
		return 0, err
	}
	return geom.Distance(math.Hypot(surface.Meters(), b.Alt-a.Alt)), nil
}

// validatePair defends the kernels against struct-literal points that
// bypassed geom.NewPoint. Unreachable for validated inputs.
func validatePair(a, b geom.Point) error {
	if err := a.Valid(); err != nil {
		return err
	}
	return b.Valid()
}

// normalizeBearing maps any degree value into [0, 360).
func normalizeBearing(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// A tiny negative input can round up to exactly 360.
	if m >= 360 {
		m -= 360
	}
	return m
}

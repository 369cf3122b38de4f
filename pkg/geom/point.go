// Package geom provides the validated value types shared by every kernel:
// points, point sets, bounding boxes, distances and earth-model errors.
// All constructors validate; a value that escapes construction is never
// re-validated downstream.
package geom

import "math"

// Coordinate bounds in degrees.
const (
	MinLatDegrees = -90.0
	MaxLatDegrees = 90.0
	MinLonDegrees = -180.0
	MaxLonDegrees = 180.0
)

// Point is a geographic coordinate in degrees. Immutable once constructed.
type Point struct {
	Lat float64
	Lon float64
}

// NewPoint validates lat/lon against the closed intervals [-90, 90] and
// [-180, 180]. Non-finite values are rejected too.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Valid(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Valid reports whether p satisfies the construction bounds. Kernels call it
// defensively, since a struct literal can bypass NewPoint.
func (p Point) Valid() error {
	// The negated form also catches NaN.
	if !(p.Lat >= MinLatDegrees && p.Lat <= MaxLatDegrees) {
		return &ValidationError{Field: "latitude", Value: p.Lat, Min: MinLatDegrees, Max: MaxLatDegrees}
	}
	if !(p.Lon >= MinLonDegrees && p.Lon <= MaxLonDegrees) {
		return &ValidationError{Field: "longitude", Value: p.Lon, Min: MinLonDegrees, Max: MaxLonDegrees}
	}
	return nil
}

// Point3D is a geographic coordinate with an altitude in meters above the
// reference surface.
type Point3D struct {
	Point
	Alt float64
}

// NewPoint3D validates the surface coordinate and requires a finite altitude.
func NewPoint3D(lat, lon, alt float64) (Point3D, error) {
	p, err := NewPoint(lat, lon)
	if err != nil {
		return Point3D{}, err
	}
	if math.IsNaN(alt) || math.IsInf(alt, 0) {
		return Point3D{}, &ValidationError{Field: "altitude", Value: alt, Min: math.Inf(-1), Max: math.Inf(1)}
	}
	return Point3D{Point: p, Alt: alt}, nil
}

// PointSet is an ordered sequence of points sampled from a geometry, e.g. a
// polyline's vertices. Callers own the backing slice; nothing in this module
// mutates one after construction.
type PointSet []Point

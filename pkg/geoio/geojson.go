// Package geoio loads validated point sets from common geometry carriers:
// GeoJSON documents, WKT strings, and OSM PBF extracts. Every vertex passes
// through geom.NewPoint, so downstream kernels never re-validate.
package geoio

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geodist/pkg/geom"
)

// FromGeoJSON parses a GeoJSON document (a bare geometry, a feature, or a
// feature collection) into one flattened point set in document order.
func FromGeoJSON(data []byte) (geom.PointSet, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse geojson: %w", err)
		}
		var points geom.PointSet
		for _, f := range fc.Features {
			points, err = appendGeometry(points, f.Geometry)
			if err != nil {
				return nil, err
			}
		}
		return points, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parse geojson: %w", err)
		}
		return appendGeometry(nil, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parse geojson: %w", err)
		}
		return appendGeometry(nil, g.Geometry())
	}
}

// appendGeometry flattens a geometry's vertices onto points in traversal
// order, validating each one.
func appendGeometry(points geom.PointSet, g orb.Geometry) (geom.PointSet, error) {
	var err error
	switch g := g.(type) {
	case orb.Point:
		return appendCoord(points, g)
	case orb.MultiPoint:
		for _, c := range g {
			if points, err = appendCoord(points, c); err != nil {
				return nil, err
			}
		}
	case orb.LineString:
		for _, c := range g {
			if points, err = appendCoord(points, c); err != nil {
				return nil, err
			}
		}
	case orb.MultiLineString:
		for _, ls := range g {
			if points, err = appendGeometry(points, ls); err != nil {
				return nil, err
			}
		}
	case orb.Ring:
		for _, c := range g {
			if points, err = appendCoord(points, c); err != nil {
				return nil, err
			}
		}
	case orb.Polygon:
		for _, ring := range g {
			if points, err = appendGeometry(points, ring); err != nil {
				return nil, err
			}
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			if points, err = appendGeometry(points, poly); err != nil {
				return nil, err
			}
		}
	case orb.Collection:
		for _, member := range g {
			if points, err = appendGeometry(points, member); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.GeoJSONType())
	}
	return points, nil
}

func appendCoord(points geom.PointSet, c orb.Point) (geom.PointSet, error) {
	p, err := geom.NewPoint(c.Lat(), c.Lon())
	if err != nil {
		return nil, fmt.Errorf("vertex %d: %w", len(points), err)
	}
	return append(points, p), nil
}

package geoio

import (
	"fmt"

	"github.com/paulmach/orb/encoding/wkt"

	"geodist/pkg/geom"
)

// FromWKT parses a WKT geometry into one flattened, validated point set in
// traversal order. WKT coordinates are lon/lat pairs.
func FromWKT(s string) (geom.PointSet, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("parse wkt: %w", err)
	}
	return appendGeometry(nil, g)
}

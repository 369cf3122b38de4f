package geoio

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"geodist/pkg/geom"
)

// WayFilter selects which ways contribute vertices to the extracted point
// set. A nil filter accepts every way.
type WayFilter func(tags osm.Tags) bool

// HighwayOnly keeps ways carrying any highway tag.
func HighwayOnly(tags osm.Tags) bool {
	return tags.Find("highway") != ""
}

// WaterwayOnly keeps ways carrying any waterway tag.
func WaterwayOnly(tags osm.Tags) bool {
	return tags.Find("waterway") != ""
}

// FromOSMPBF extracts the vertices of matching ways from an OSM PBF extract
// as one ordered point set, vertices in way order. The reader is consumed
// twice (ways then nodes), so it must implement io.ReadSeeker.
func FromOSMPBF(ctx context.Context, rs io.ReadSeeker, filter WayFilter) (geom.PointSet, error) {
	// Pass 1: scan ways to collect vertex order and referenced node IDs.
	var order []osm.NodeID
	referenced := make(map[osm.NodeID]struct{})

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if filter != nil && !filter(w.Tags) {
			continue
		}
		for _, wn := range w.Nodes {
			order = append(order, wn.ID)
			referenced[wn.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 1 complete: %d way vertices, %d distinct nodes", len(order), len(referenced))

	if len(order) == 0 {
		return nil, geom.ErrEmptyPointSet
	}

	// Pass 2: scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	coords := make(map[osm.NodeID]geom.Point, len(referenced))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		p, err := geom.NewPoint(n.Lat, n.Lon)
		if err != nil {
			scanner.Close()
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		coords[n.ID] = p
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 2 complete: %d node coordinates collected", len(coords))

	points := make(geom.PointSet, 0, len(order))
	var skipped int
	for _, id := range order {
		p, ok := coords[id]
		if !ok {
			skipped++
			continue
		}
		points = append(points, p)
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d vertices with missing node coordinates", skipped)
	}
	if len(points) == 0 {
		return nil, geom.ErrEmptyPointSet
	}
	return points, nil
}

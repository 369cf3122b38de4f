// Package spatial provides an immutable nearest-neighbor index over a point
// set, exact under the geodesic metric of the solver it was built with.
//
// The R-tree orders its best-first traversal by a meter lower bound that
// never exceeds the true geodesic distance to a subtree, so the first leaf
// popped is the true nearest point. That keeps index results bit-identical
// to a brute-force scan, which the Hausdorff engine relies on.
package spatial

import (
	"math"

	"github.com/tidwall/rtree"

	"geodist/pkg/geodesy"
	"geodist/pkg/geom"
)

const degToRad = math.Pi / 180

// tieToleranceMeters is the window inside which two candidate distances
// count as equal, so traversal order can never flip a witness between the
// indexed and brute-force paths.
const tieToleranceMeters = 1e-12

// Match is a nearest-neighbor answer: the indexed point, its position in the
// original set, and its distance from the query.
type Match struct {
	Point    geom.Point
	Index    int
	Distance geom.Distance
}

// Index is a nearest-neighbor index over a fixed point set. It holds only
// derived structure; the point set is borrowed, never mutated, and must
// outlive the index. Building is the dominant one-time cost; queries are
// sub-linear afterwards. Safe for concurrent queries once built.
type Index struct {
	tree   rtree.RTreeG[int]
	points geom.PointSet
	solver geodesy.Solver
	bound  geodesy.PruneBound
}

// Build indexes points under the solver's distance function.
func Build(points geom.PointSet, solver geodesy.Solver) (*Index, error) {
	if len(points) == 0 {
		return nil, geom.ErrEmptyPointSet
	}
	ix := &Index{points: points, solver: solver, bound: solver.PruneBound()}
	for i, p := range points {
		xy := [2]float64{p.Lon, p.Lat}
		ix.tree.Insert(xy, xy, i)
	}
	return ix, nil
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return len(ix.points) }

// Nearest returns the indexed point closest to q under the solver's metric.
// Ties within tieToleranceMeters are broken by the lowest index in the
// original set.
func (ix *Index) Nearest(q geom.Point) (Match, error) {
	if err := q.Valid(); err != nil {
		return Match{}, err
	}

	var (
		best     Match
		found    bool
		solveErr error
	)

	algo := func(min, max [2]float64, data int, item bool) float64 {
		if item {
			sol, err := ix.solver.Solve(q, ix.points[data])
			if err != nil {
				solveErr = err
				return math.Inf(1)
			}
			return sol.Distance.Meters()
		}
		return boxLowerBound(q, min, max, ix.bound)
	}

	ix.tree.Nearby(algo, func(_, _ [2]float64, data int, dist float64) bool {
		if solveErr != nil {
			return false
		}
		switch {
		case !found:
			best = Match{Point: ix.points[data], Index: data, Distance: geom.Distance(dist)}
			found = true
		case dist+tieToleranceMeters < best.Distance.Meters():
			best = Match{Point: ix.points[data], Index: data, Distance: geom.Distance(dist)}
		case math.Abs(dist-best.Distance.Meters()) <= tieToleranceMeters && data < best.Index:
			best = Match{Point: ix.points[data], Index: data, Distance: geom.Distance(dist)}
		case dist > best.Distance.Meters()+tieToleranceMeters:
			// Leaves pop in nondecreasing metric order; nothing later can win.
			return false
		}
		return true
	})
	if solveErr != nil {
		return Match{}, solveErr
	}
	if !found {
		return Match{}, geom.ErrEmptyPointSet
	}
	return best, nil
}

// boxLowerBound returns a meter distance that never exceeds the true
// geodesic distance from q to any point inside the rect (given as lon/lat
// min/max corners). The bound is the exact great-circle minimum over the
// rect on a sphere inscribed in the model, shrunk by the worst-case
// geodetic-to-geocentric latitude deviation at both endpoints.
func boxLowerBound(q geom.Point, min, max [2]float64, bound geodesy.PruneBound) float64 {
	lonGap := circularGapDeg(q.Lon, min[0], max[0])
	sigma := minCentralAngle(q.Lat*degToRad, min[1]*degToRad, max[1]*degToRad, lonGap*degToRad)
	sigma -= 2 * bound.LatSlackRad
	if sigma <= 0 {
		return 0
	}
	return bound.MinRadiusMeters * sigma
}

// circularGapDeg is the angular gap from lon to the interval
// [minLon, maxLon], measured around the circle so the antimeridian never
// inflates it. Zero when lon falls inside the interval.
func circularGapDeg(lon, minLon, maxLon float64) float64 {
	if lon >= minLon && lon <= maxLon {
		return 0
	}
	d1 := math.Abs(lon - minLon)
	if d1 > 180 {
		d1 = 360 - d1
	}
	d2 := math.Abs(lon - maxLon)
	if d2 > 180 {
		d2 = 360 - d2
	}
	return math.Min(d1, d2)
}

// minCentralAngle minimizes the great-circle central angle between
// (qLat, 0) and (lat, lonGap) over lat in [minLat, maxLat]. All radians.
// The central angle is monotonic in the longitude gap, so evaluating at the
// gap itself covers every point of the rect.
func minCentralAngle(qLat, minLat, maxLat, lonGap float64) float64 {
	if lonGap == 0 && qLat >= minLat && qLat <= maxLat {
		return 0
	}
	best := math.Min(
		centralAngle(qLat, minLat, lonGap),
		centralAngle(qLat, maxLat, lonGap),
	)
	// Interior stationary point: tan(lat) = tan(qLat) / cos(lonGap).
	foot := math.Atan2(math.Sin(qLat), math.Cos(qLat)*math.Cos(lonGap))
	if foot > minLat && foot < maxLat {
		best = math.Min(best, centralAngle(qLat, foot, lonGap))
	}
	return best
}

// centralAngle is the haversine central angle between (lat1, 0) and
// (lat2, dLon), radians in and out.
func centralAngle(lat1, lat2, dLon float64) float64 {
	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = math.Min(math.Max(h, 0), 1)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Package hausdorff computes directed and symmetric Hausdorff distances
// between geographic point sets, with deterministic witness reporting.
//
// The directed distance from A to B is max over a in A of the minimum
// distance from a to any point of B. Strategy selection between a
// brute-force scan and an R-tree index is a pure function of the input
// sizes, and both paths return identical distances and witnesses.
package hausdorff

import (
	"math"

	"geodist/pkg/geodesy"
	"geodist/pkg/geom"
	"geodist/pkg/spatial"
)

const (
	// minIndexedSize is the set size below which index construction costs
	// more than it saves.
	minIndexedSize = 32
	// maxNaiveCrossProduct caps the pair count still handled by brute force
	// even when both sets clear minIndexedSize.
	maxNaiveCrossProduct = 4000
	// tieToleranceMeters is the window inside which two distances count as
	// equal for witness tie-breaking.
	tieToleranceMeters = 1e-12
	// pruneSlackDegrees pads the pruning bounding box (~1 cm) so borderline
	// candidates are evaluated rather than skipped.
	pruneSlackDegrees = 1e-7
)

// Witness is the point pair realizing a reported Hausdorff distance.
// Indices refer to the input sets' iteration order.
type Witness struct {
	SourceIndex int
	TargetIndex int
	Source      geom.Point
	Target      geom.Point
	Distance    geom.Distance
}

// Result carries a Hausdorff distance and the witness realizing it.
type Result struct {
	Distance geom.Distance
	Witness  Witness
}

// Options tunes a Hausdorff computation. The zero value is ready to use.
type Options struct {
	// Clip enables bounding-box pruning of source points that provably
	// cannot produce the maximum. Purely a performance knob: the reported
	// distance and witness are identical with and without it.
	Clip bool
}

// Directed returns the directed Hausdorff distance from a into b under the
// shared solver, with the realizing pair. Ties prefer the earliest index in
// a, then the earliest index in b. Either set empty fails with
// geom.ErrEmptyPointSet.
func Directed(a, b geom.PointSet, solver geodesy.Solver, opts Options) (Result, error) {
	if len(a) == 0 || len(b) == 0 {
		return Result{}, geom.ErrEmptyPointSet
	}

	nearest := bruteNearest(b, solver)
	if !useBruteForce(len(a), len(b)) {
		ix, err := spatial.Build(b, solver)
		if err != nil {
			return Result{}, err
		}
		nearest = ix.Nearest
	}

	var pruner *boxPruner
	if opts.Clip {
		p, err := newBoxPruner(b, solver)
		if err != nil {
			return Result{}, err
		}
		pruner = p
	}

	var (
		best  Witness
		found bool
	)
	for i, p := range a {
		if found && pruner != nil {
			skip, err := pruner.cannotExceed(p, best.Distance.Meters())
			if err != nil {
				return Result{}, err
			}
			if skip {
				continue
			}
		}
		m, err := nearest(p)
		if err != nil {
			return Result{}, err
		}
		// First occurrence in a wins ties: replace only on a strict increase.
		if !found || m.Distance.Meters() > best.Distance.Meters()+tieToleranceMeters {
			best = Witness{
				SourceIndex: i,
				TargetIndex: m.Index,
				Source:      p,
				Target:      m.Point,
				Distance:    m.Distance,
			}
			found = true
		}
	}
	return Result{Distance: best.Distance, Witness: best}, nil
}

// Symmetric returns the larger of the two directed distances. When the two
// directions tie, the A-to-B witness is reported.
func Symmetric(a, b geom.PointSet, solver geodesy.Solver, opts Options) (Result, error) {
	forward, err := Directed(a, b, solver, opts)
	if err != nil {
		return Result{}, err
	}
	reverse, err := Directed(b, a, solver, opts)
	if err != nil {
		return Result{}, err
	}
	if reverse.Distance.Meters() > forward.Distance.Meters()+tieToleranceMeters {
		return reverse, nil
	}
	return forward, nil
}

// useBruteForce decides the strategy from input sizes alone, so selection is
// deterministic and reproducible.
func useBruteForce(aLen, bLen int) bool {
	minSize := aLen
	if bLen < minSize {
		minSize = bLen
	}
	return minSize < minIndexedSize || aLen*bLen <= maxNaiveCrossProduct
}

// bruteNearest returns a linear-scan nearest function over b with the same
// tie-breaking as the index: lowest index wins inside the tolerance window.
func bruteNearest(b geom.PointSet, solver geodesy.Solver) func(geom.Point) (spatial.Match, error) {
	return func(q geom.Point) (spatial.Match, error) {
		best := spatial.Match{Index: -1}
		for i, p := range b {
			sol, err := solver.Solve(q, p)
			if err != nil {
				return spatial.Match{}, err
			}
			if best.Index < 0 || sol.Distance.Meters()+tieToleranceMeters < best.Distance.Meters() {
				best = spatial.Match{Point: p, Index: i, Distance: sol.Distance}
			}
		}
		return best, nil
	}
}

// boxPruner skips source points whose nearest-neighbor distance into the
// target set provably cannot raise the running maximum. Every target point
// lies inside the slack-expanded bounding box, so for any query the distance
// to the box center plus the center's reach over the box bounds the
// nearest-neighbor distance from above.
type boxPruner struct {
	center geom.Point
	reach  float64
	solver geodesy.Solver
}

func newBoxPruner(b geom.PointSet, solver geodesy.Solver) (*boxPruner, error) {
	box, err := geom.Bounds(b)
	if err != nil {
		return nil, err
	}
	box = box.Expand(pruneSlackDegrees)
	center := geom.Point{
		Lat: (box.MinLat + box.MaxLat) / 2,
		Lon: (box.MinLon + box.MaxLon) / 2,
	}
	halfLat := (box.MaxLat - box.MinLat) / 2 * math.Pi / 180
	halfLon := (box.MaxLon - box.MinLon) / 2 * math.Pi / 180
	// Meridian-then-parallel route from the center, scaled by the model's
	// largest radius of curvature, bounds the center-to-anywhere distance.
	reach := solver.PruneBound().MaxRadiusMeters * (halfLat + halfLon)
	return &boxPruner{center: center, reach: reach, solver: solver}, nil
}

// cannotExceed reports whether every target point is provably closer to q
// than currentMax, i.e. q can neither raise the directed maximum nor tie for
// the witness.
func (bp *boxPruner) cannotExceed(q geom.Point, currentMax float64) (bool, error) {
	sol, err := bp.solver.Solve(q, bp.center)
	if err != nil {
		return false, err
	}
	return sol.Distance.Meters()+bp.reach < currentMax-tieToleranceMeters, nil
}

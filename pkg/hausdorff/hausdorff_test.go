package hausdorff

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"geodist/pkg/geodesy"
	"geodist/pkg/geom"
)

// directedReference is a plain double loop with the published tie rules:
// lowest target index inside the tolerance window, first source occurrence
// on the maximum.
func directedReference(a, b geom.PointSet, solver geodesy.Solver, t *testing.T) Result {
	t.Helper()
	var best Witness
	found := false
	for i, p := range a {
		minDist := math.Inf(1)
		minIdx := -1
		for j, q := range b {
			sol, err := solver.Solve(p, q)
			if err != nil {
				t.Fatalf("Solve error: %v", err)
			}
			if sol.Distance.Meters()+tieToleranceMeters < minDist {
				minDist = sol.Distance.Meters()
				minIdx = j
			}
		}
		if !found || minDist > best.Distance.Meters()+tieToleranceMeters {
			best = Witness{
				SourceIndex: i,
				TargetIndex: minIdx,
				Source:      p,
				Target:      b[minIdx],
				Distance:    geom.Distance(minDist),
			}
			found = true
		}
	}
	return Result{Distance: best.Distance, Witness: best}
}

func TestDirectedKnownValues(t *testing.T) {
	s := geodesy.DefaultSphere()

	t.Run("single source equidistant targets", func(t *testing.T) {
		a := geom.PointSet{{Lat: 0, Lon: 0}}
		b := geom.PointSet{{Lat: 0, Lon: 1}, {Lat: 1, Lon: 0}}
		res, err := Directed(a, b, s, Options{})
		if err != nil {
			t.Fatalf("Directed error: %v", err)
		}
		// One degree along the equator and one along a meridian are the same
		// arc on a sphere; the tie goes to the earlier target.
		if diff := math.Abs(res.Distance.Meters() - 111_195.0802335329); diff > 1e-6 {
			t.Errorf("distance = %.9f m, want 111195.0802335329", res.Distance.Meters())
		}
		if res.Witness.TargetIndex != 0 {
			t.Errorf("tie witness target = %d, want 0", res.Witness.TargetIndex)
		}
		if res.Witness.SourceIndex != 0 {
			t.Errorf("witness source = %d, want 0", res.Witness.SourceIndex)
		}
	})

	t.Run("farthest source wins", func(t *testing.T) {
		a := geom.PointSet{{Lat: 0, Lon: 0.5}, {Lat: 0, Lon: 3}}
		b := geom.PointSet{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
		res, err := Directed(a, b, s, Options{})
		if err != nil {
			t.Fatalf("Directed error: %v", err)
		}
		if res.Witness.SourceIndex != 1 || res.Witness.TargetIndex != 1 {
			t.Errorf("witness = source %d target %d, want 1, 1",
				res.Witness.SourceIndex, res.Witness.TargetIndex)
		}
		want, err := geodesy.Distance(a[1], b[1], s)
		if err != nil {
			t.Fatalf("Distance error: %v", err)
		}
		if res.Distance != want {
			t.Errorf("distance = %v, want %v", res.Distance, want)
		}
	})

	t.Run("subset has zero directed distance", func(t *testing.T) {
		b := geom.PointSet{{Lat: 10, Lon: 10}, {Lat: 11, Lon: 11}, {Lat: 12, Lon: 12}}
		a := b[:2]
		res, err := Directed(a, b, s, Options{})
		if err != nil {
			t.Fatalf("Directed error: %v", err)
		}
		if res.Distance.Meters() != 0 {
			t.Errorf("distance = %v, want 0", res.Distance.Meters())
		}
	})
}

func TestDirectedEmptySets(t *testing.T) {
	s := geodesy.DefaultSphere()
	set := geom.PointSet{{Lat: 0, Lon: 0}}
	if _, err := Directed(nil, set, s, Options{}); !errors.Is(err, geom.ErrEmptyPointSet) {
		t.Errorf("empty source: error = %v, want ErrEmptyPointSet", err)
	}
	if _, err := Directed(set, nil, s, Options{}); !errors.Is(err, geom.ErrEmptyPointSet) {
		t.Errorf("empty target: error = %v, want ErrEmptyPointSet", err)
	}
	if _, err := Symmetric(nil, nil, s, Options{}); !errors.Is(err, geom.ErrEmptyPointSet) {
		t.Errorf("symmetric empty: error = %v, want ErrEmptyPointSet", err)
	}
}

func TestSymmetricIsMaxOfDirections(t *testing.T) {
	s := geodesy.DefaultSphere()
	a := geom.PointSet{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0.5, Lon: 0.5}}
	b := geom.PointSet{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 5}}

	fwd, err := Directed(a, b, s, Options{})
	if err != nil {
		t.Fatalf("Directed error: %v", err)
	}
	rev, err := Directed(b, a, s, Options{})
	if err != nil {
		t.Fatalf("Directed error: %v", err)
	}
	sym, err := Symmetric(a, b, s, Options{})
	if err != nil {
		t.Fatalf("Symmetric error: %v", err)
	}
	want := fwd
	if rev.Distance.Meters() > fwd.Distance.Meters()+tieToleranceMeters {
		want = rev
	}
	if sym != want {
		t.Errorf("Symmetric = %+v, want %+v", sym, want)
	}
}

func TestSymmetricTiePrefersForward(t *testing.T) {
	s := geodesy.DefaultSphere()
	// Mirror-image sets: both directed distances are identical.
	a := geom.PointSet{{Lat: 0, Lon: 0}}
	b := geom.PointSet{{Lat: 0, Lon: 2}}
	sym, err := Symmetric(a, b, s, Options{})
	if err != nil {
		t.Fatalf("Symmetric error: %v", err)
	}
	if sym.Witness.Source != a[0] || sym.Witness.Target != b[0] {
		t.Errorf("tie witness = %+v, want the forward direction", sym.Witness)
	}
}

func randomSet(rng *rand.Rand, n int, latBase, lonBase float64) geom.PointSet {
	set := make(geom.PointSet, n)
	for i := range set {
		set[i] = geom.Point{
			Lat: latBase + rng.Float64()*4,
			Lon: lonBase + rng.Float64()*4,
		}
	}
	return set
}

func TestStrategiesAgree(t *testing.T) {
	// Size pairs straddling the crossover in both dimensions: small sets,
	// sets large enough for the index, and one lopsided pair each way.
	sizes := []struct{ na, nb int }{
		{1, 1},
		{10, 10},
		{31, 200},
		{40, 110},
		{110, 40},
		{80, 80},
	}
	solvers := map[string]geodesy.Solver{
		"sphere":    geodesy.DefaultSphere(),
		"ellipsoid": geodesy.WGS84(),
	}
	rng := rand.New(rand.NewSource(11))

	for name, solver := range solvers {
		t.Run(name, func(t *testing.T) {
			for _, sz := range sizes {
				a := randomSet(rng, sz.na, -2, 100)
				b := randomSet(rng, sz.nb, 0, 102)
				got, err := Directed(a, b, solver, Options{})
				if err != nil {
					t.Fatalf("Directed(%dx%d) error: %v", sz.na, sz.nb, err)
				}
				want := directedReference(a, b, solver, t)
				if got != want {
					t.Errorf("Directed(%dx%d) = %+v, reference %+v", sz.na, sz.nb, got, want)
				}
			}
		})
	}
}

func TestClipIsResultNeutral(t *testing.T) {
	s := geodesy.DefaultSphere()
	rng := rand.New(rand.NewSource(23))

	cases := []struct {
		name string
		a, b geom.PointSet
	}{
		{
			name: "overlapping clouds",
			a:    randomSet(rng, 60, -2, 100),
			b:    randomSet(rng, 60, -1, 101),
		},
		{
			name: "disjoint clouds",
			a:    randomSet(rng, 45, 20, 10),
			b:    randomSet(rng, 45, -30, 140),
		},
		{
			name: "source spread around a tight target",
			a:    randomSet(rng, 80, -20, 80),
			b:    geom.PointSet{{Lat: 1, Lon: 103}, {Lat: 1.1, Lon: 103.1}},
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := Directed(tt.a, tt.b, s, Options{})
			if err != nil {
				t.Fatalf("Directed error: %v", err)
			}
			clipped, err := Directed(tt.a, tt.b, s, Options{Clip: true})
			if err != nil {
				t.Fatalf("Directed clipped error: %v", err)
			}
			if plain != clipped {
				t.Errorf("clip changed the result:\n  plain   %+v\n  clipped %+v", plain, clipped)
			}

			symPlain, err := Symmetric(tt.a, tt.b, s, Options{})
			if err != nil {
				t.Fatalf("Symmetric error: %v", err)
			}
			symClipped, err := Symmetric(tt.a, tt.b, s, Options{Clip: true})
			if err != nil {
				t.Fatalf("Symmetric clipped error: %v", err)
			}
			if symPlain != symClipped {
				t.Errorf("clip changed the symmetric result:\n  plain   %+v\n  clipped %+v", symPlain, symClipped)
			}
		})
	}
}

func TestUseBruteForce(t *testing.T) {
	tests := []struct {
		na, nb int
		want   bool
	}{
		{1, 1, true},
		{31, 1000, true},      // needle below the index floor
		{32, 125, true},       // 4000 pairs exactly
		{32, 126, false},      // one pair over
		{100, 100, false},
		{1000, 31, true},
	}
	for _, tt := range tests {
		if got := useBruteForce(tt.na, tt.nb); got != tt.want {
			t.Errorf("useBruteForce(%d, %d) = %v, want %v", tt.na, tt.nb, got, tt.want)
		}
	}
}

func TestDirectedRejectsInvalidPoint(t *testing.T) {
	s := geodesy.DefaultSphere()
	a := geom.PointSet{{Lat: 95, Lon: 0}}
	b := geom.PointSet{{Lat: 0, Lon: 0}}
	_, err := Directed(a, b, s, Options{})
	var verr *geom.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Directed with invalid source: error = %v, want *ValidationError", err)
	}
}

func BenchmarkDirectedIndexed(b *testing.B) {
	s := geodesy.DefaultSphere()
	rng := rand.New(rand.NewSource(3))
	src := randomSet(rng, 500, -2, 100)
	dst := randomSet(rng, 500, 0, 102)
	for i := 0; i < b.N; i++ {
		Directed(src, dst, s, Options{})
	}
}

func BenchmarkDirectedBrute(b *testing.B) {
	s := geodesy.DefaultSphere()
	rng := rand.New(rand.NewSource(3))
	src := randomSet(rng, 20, -2, 100)
	dst := randomSet(rng, 20, 0, 102)
	for i := 0; i < b.N; i++ {
		Directed(src, dst, s, Options{})
	}
}

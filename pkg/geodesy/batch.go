package geodesy

import (
	"fmt"

	"geodist/pkg/geom"
)

// Pair is one origin/destination input to DistanceBatch.
type Pair struct {
	From geom.Point
	To   geom.Point
}

// Result is the per-pair outcome of a batch evaluation. Exactly one of
// Distance and Err is meaningful.
type Result struct {
	Distance geom.Distance
	Err      error
}

// ElementError wraps a per-element failure with the input index it belongs
// to, so callers can zip results back to inputs.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("pair %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// DistanceBatch evaluates every pair under s in a single ordered pass. The
// returned slice always has len(pairs) entries with results[i] corresponding
// to pairs[i]; a failing element records an *ElementError at its slot and
// never aborts siblings. Elements are independent, so callers may shard the
// input across goroutines if they need parallelism.
func DistanceBatch(pairs []Pair, s Solver) []Result {
	results := make([]Result, len(pairs))
	for i, pair := range pairs {
		d, err := Distance(pair.From, pair.To, s)
		if err != nil {
			results[i] = Result{Err: &ElementError{Index: i, Err: err}}
			continue
		}
		results[i] = Result{Distance: d}
	}
	return results
}

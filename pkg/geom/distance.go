package geom

import "math"

// Distance is a non-negative length in meters. The zero value is 0 m.
type Distance float64

// NewDistance rejects negative and non-finite meter values. Kernels that
// produce meters from trigonometry construct Distance directly once the
// value is non-negative by derivation.
func NewDistance(meters float64) (Distance, error) {
	if !(meters >= 0) || math.IsInf(meters, 1) {
		return 0, &ValidationError{Field: "distance", Value: meters, Min: 0, Max: math.Inf(1)}
	}
	return Distance(meters), nil
}

// Meters returns the underlying value.
func (d Distance) Meters() float64 { return float64(d) }

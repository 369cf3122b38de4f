package geom

import (
	"errors"
	"fmt"
)

// ErrEmptyPointSet is returned by operations that are undefined over an
// empty set (bounding boxes, Hausdorff distance). It is deliberately a
// distinct sentinel: "distance to nothing" must surface as an error, never
// as a silent zero.
var ErrEmptyPointSet = errors.New("empty point set")

// ValidationError reports a numeric input outside its legal domain.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

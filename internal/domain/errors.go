package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidShape is wrapped by every InvalidShapeError.
var ErrInvalidShape = errors.New("invalid aggregation shape")

// InvalidShapeError rejects an aggregation target that does not evenly
// divide the source shape.
type InvalidShapeError struct {
	Source Shape
	Target Shape
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid aggregation shape: %s does not evenly divide %s", e.Target, e.Source)
}

func (e *InvalidShapeError) Unwrap() error { return ErrInvalidShape }

// ProjectionRangeError reports cell indices outside the grid after
// wrapping and clamping. It signals a bug in the projection math and is
// only ever raised with panic.
type ProjectionRangeError struct {
	Sample Sample
	Lat    int
	Lon    int
	Shape  Shape
}

func (e *ProjectionRangeError) Error() string {
	return fmt.Sprintf("projection of (%g, %g) gave cell (%d, %d) outside %s",
		e.Sample.Lat, e.Sample.Lon, e.Lat, e.Lon, e.Shape)
}

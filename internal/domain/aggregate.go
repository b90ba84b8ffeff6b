package domain

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ValidateTarget checks that target evenly divides source and is no larger.
func ValidateTarget(source, target Shape) error {
	if target.Rows <= 0 || target.Cols <= 0 ||
		target.Rows > source.Rows || target.Cols > source.Cols ||
		source.Rows%target.Rows != 0 || source.Cols%target.Cols != 0 {
		return &InvalidShapeError{Source: source, Target: target}
	}
	return nil
}

// Aggregate downsamples m to target by averaging a window of source cells
// per target cell and rounding half away from zero, so an even split
// yields land.
//
// Windows are centred on the target cell's first source cell. Latitude
// windows are clamped at the poles; longitude windows wrap across the
// antimeridian.
func Aggregate(m Mask, target Shape) (Mask, error) {
	src := m.shape
	if err := ValidateTarget(src, target); err != nil {
		return Mask{}, err
	}
	fx := src.Rows / target.Rows
	fy := src.Cols / target.Cols
	hfx, hfy := fx/2, fy/2

	// Column p of a periodic row is source column p-hfy.
	periodic := make([][]float64, src.Rows)
	row := make([]float64, src.Cols)
	for lat := range src.Rows {
		for lon := range src.Cols {
			row[lon] = float64(m.cells[lat*src.Cols+lon])
		}
		periodic[lat] = circularSlice(row, -hfy, src.Cols+2*hfy)
	}

	out := NewMask(target)
	window := make([]float64, 0, fx*fy)
	for lat := range target.Rows {
		top := max(lat*fx-hfx, 0)
		bottom := min(lat*fx-hfx+fx, src.Rows)
		for lon := range target.Cols {
			left := lon * fy
			window = window[:0]
			for r := top; r < bottom; r++ {
				window = append(window, periodic[r][left:left+fy]...)
			}
			out.SetLand(lat, lon, math.Round(stat.Mean(window, nil)) >= 1)
		}
	}
	return out, nil
}

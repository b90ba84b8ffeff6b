package domain

import "math"

// Sample is a single point classification from the sample source.
// Category is Land or Sea.
type Sample struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Category Category `json:"category"`
}

// Project marks the cell under s as Land or Sea and returns g.
// Later samples landing in the same cell overwrite earlier ones.
func Project(g *Grid, s Sample) *Grid {
	lat, lon := cellIndex(g.shape, s)
	c := Sea
	if s.Category == Land {
		c = Land
	}
	g.Set(lat, lon, c)
	return g
}

// ProjectAll projects every sample in order and returns g.
func ProjectAll(g *Grid, samples []Sample) *Grid {
	for _, s := range samples {
		Project(g, s)
	}
	return g
}

// cellIndex maps a sample to grid indices. The resolution is derived from
// the grid width so arbitrarily shaped test grids project consistently.
// Latitude clamps at the poles, longitude wraps at the antimeridian.
func cellIndex(shape Shape, s Sample) (int, int) {
	latScale := float64(shape.Rows) / DegreesLat
	lonScale := float64(shape.Cols) / DegreesLon

	lat := int(math.Round((s.Lat + 90.0) * latScale))
	lat = min(max(lat, 0), shape.Rows-1)

	lon := wrapIndex(int(math.Round((s.Lon+180.0)*lonScale)), shape.Cols)

	if lat < 0 || lat >= shape.Rows || lon < 0 || lon >= shape.Cols {
		panic(&ProjectionRangeError{Sample: s, Lat: lat, Lon: lon, Shape: shape})
	}
	return lat, lon
}

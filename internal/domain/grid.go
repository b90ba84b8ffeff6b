package domain

import "fmt"

const (
	// DegreesLat and DegreesLon are the angular extent of the base grid.
	DegreesLat = 180
	DegreesLon = 360
)

// Shape is the (rows, cols) extent of a raster, rows indexing latitude.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// BaseShape returns the full-resolution shape for resolution cells per degree.
func BaseShape(resolution int) Shape {
	return Shape{Rows: DegreesLat * resolution, Cols: DegreesLon * resolution}
}

// Grid is a tri-state raster indexed [lat][lon], stored row-major.
type Grid struct {
	shape Shape
	cells []Category
}

// NewGrid allocates a grid of the given shape with every cell Unknown.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("domain: invalid grid shape %dx%d", rows, cols))
	}
	return &Grid{
		shape: Shape{Rows: rows, Cols: cols},
		cells: make([]Category, rows*cols),
	}
}

// NewBaseGrid allocates the 180r x 360r base grid for resolution r.
func NewBaseGrid(resolution int) *Grid {
	if resolution <= 0 {
		panic(fmt.Sprintf("domain: invalid resolution %d", resolution))
	}
	s := BaseShape(resolution)
	return NewGrid(s.Rows, s.Cols)
}

func (g *Grid) Shape() Shape { return g.shape }

func (g *Grid) At(lat, lon int) Category {
	return g.cells[lat*g.shape.Cols+lon]
}

func (g *Grid) Set(lat, lon int, c Category) {
	g.cells[lat*g.shape.Cols+lon] = c
}

// Row returns the backing slice of row lat. Writes go through to the grid.
func (g *Grid) Row(lat int) []Category {
	start := lat * g.shape.Cols
	return g.cells[start : start+g.shape.Cols]
}

// Count returns the number of cells holding c.
func (g *Grid) Count(c Category) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

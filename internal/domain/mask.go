package domain

import (
	"errors"
	"fmt"
)

// Mask is a fully resolved binary raster: every cell is land or sea.
// Cells are stored row-major as 1 (land) or 0 (sea).
type Mask struct {
	shape Shape
	cells []uint8
}

// NewMask returns an all-sea mask of the given shape.
func NewMask(s Shape) Mask {
	return Mask{shape: s, cells: make([]uint8, s.Rows*s.Cols)}
}

// MaskFromCells builds a mask from row-major 0/1 codes, as read back from storage.
func MaskFromCells(s Shape, cells []uint8) (Mask, error) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return Mask{}, fmt.Errorf("mask shape %s: %w", s, errInvalidDims)
	}
	if len(cells) != s.Rows*s.Cols {
		return Mask{}, fmt.Errorf("mask shape %s needs %d cells, got %d", s, s.Rows*s.Cols, len(cells))
	}
	for i, v := range cells {
		if v > 1 {
			return Mask{}, fmt.Errorf("mask cell %d holds code %d", i, v)
		}
	}
	out := make([]uint8, len(cells))
	copy(out, cells)
	return Mask{shape: s, cells: out}, nil
}

var errInvalidDims = errors.New("dimensions must be positive")

func (m Mask) Shape() Shape { return m.shape }

func (m Mask) Land(lat, lon int) bool {
	return m.cells[lat*m.shape.Cols+lon] == 1
}

func (m Mask) SetLand(lat, lon int, land bool) {
	var v uint8
	if land {
		v = 1
	}
	m.cells[lat*m.shape.Cols+lon] = v
}

// Cells returns a copy of the row-major 0/1 codes.
func (m Mask) Cells() []uint8 {
	out := make([]uint8, len(m.cells))
	copy(out, m.cells)
	return out
}

// Row returns a copy of row lat as 0/1 codes.
func (m Mask) Row(lat int) []uint8 {
	start := lat * m.shape.Cols
	out := make([]uint8, m.shape.Cols)
	copy(out, m.cells[start:start+m.shape.Cols])
	return out
}

// LandCount returns the number of land cells.
func (m Mask) LandCount() int {
	n := 0
	for _, v := range m.cells {
		n += int(v)
	}
	return n
}

// Rows renders each row as a string of '1' (land) and '0' (sea).
func (m Mask) Rows() []string {
	rows := make([]string, m.shape.Rows)
	buf := make([]byte, m.shape.Cols)
	for lat := range m.shape.Rows {
		for lon := range m.shape.Cols {
			buf[lon] = '0' + m.cells[lat*m.shape.Cols+lon]
		}
		rows[lat] = string(buf)
	}
	return rows
}

// MaskFromRows parses the string form produced by Rows.
func MaskFromRows(rows []string) (Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Mask{}, fmt.Errorf("mask rows: %w", errInvalidDims)
	}
	s := Shape{Rows: len(rows), Cols: len(rows[0])}
	cells := make([]uint8, 0, s.Rows*s.Cols)
	for lat, row := range rows {
		if len(row) != s.Cols {
			return Mask{}, fmt.Errorf("mask row %d has %d cells, want %d", lat, len(row), s.Cols)
		}
		for lon := 0; lon < len(row); lon++ {
			switch row[lon] {
			case '0':
				cells = append(cells, 0)
			case '1':
				cells = append(cells, 1)
			default:
				return Mask{}, fmt.Errorf("mask row %d col %d: unexpected %q", lat, lon, row[lon])
			}
		}
	}
	return Mask{shape: s, cells: cells}, nil
}

package domain

import "testing"

// gridFromRows builds a grid from rows of '.', 'L' and 'S'.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows), len(rows[0]))
	for lat, row := range rows {
		if len(row) != g.shape.Cols {
			t.Fatalf("row %d has %d cells, want %d", lat, len(row), g.shape.Cols)
		}
		for lon, ch := range row {
			switch ch {
			case '.':
			case 'L':
				g.Set(lat, lon, Land)
			case 'S':
				g.Set(lat, lon, Sea)
			default:
				t.Fatalf("unexpected cell %q", ch)
			}
		}
	}
	return g
}

// gridRows is the inverse of gridFromRows.
func gridRows(g *Grid) []string {
	out := make([]string, g.shape.Rows)
	for lat := range g.shape.Rows {
		b := make([]byte, g.shape.Cols)
		for lon, c := range g.Row(lat) {
			switch c {
			case Land:
				b[lon] = 'L'
			case Sea:
				b[lon] = 'S'
			default:
				b[lon] = '.'
			}
		}
		out[lat] = string(b)
	}
	return out
}

func mustMask(t *testing.T, rows ...string) Mask {
	t.Helper()
	m, err := MaskFromRows(rows)
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	return m
}

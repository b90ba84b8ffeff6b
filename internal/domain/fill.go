package domain

// FillReport counts the cells resolved by each stage of Fill.
type FillReport struct {
	Pole      int
	Latitude  int
	Longitude int
}

// Total returns the number of cells Fill changed from Unknown.
func (r FillReport) Total() int {
	return r.Pole + r.Latitude + r.Longitude
}

// Fill resolves every Unknown cell of g in place and returns the collapsed
// land/sea mask. A grid with no Unknown cells is only collapsed.
//
// Row 0 is seeded to Sea. The latitude pass then copies each column's
// value downward from the previous row, for columns with at least one
// sample below the pole. Columns without samples are left for the
// longitude pass, which splits each unknown run between its two nearest
// known neighbours on the same row, wrapping at the antimeridian.
func Fill(g *Grid) (Mask, FillReport) {
	var report FillReport
	if g.Count(Unknown) > 0 {
		report.Pole = seedPole(g)
		report.Latitude = fillLatitude(g)
	}
	if g.Count(Unknown) > 0 {
		report.Longitude = fillLongitude(g)
	}
	return collapse(g), report
}

func seedPole(g *Grid) int {
	n := 0
	row := g.Row(0)
	for i := range row {
		if row[i] == Unknown {
			n++
		}
		row[i] = Sea
	}
	return n
}

func fillLatitude(g *Grid) int {
	filled := 0
	for lon := range g.shape.Cols {
		if !columnHasSamples(g, lon) {
			continue
		}
		for lat := 1; lat < g.shape.Rows; lat++ {
			if g.At(lat, lon) == Unknown {
				g.Set(lat, lon, g.At(lat-1, lon))
				filled++
			}
		}
	}
	return filled
}

func columnHasSamples(g *Grid, lon int) bool {
	for lat := 1; lat < g.shape.Rows; lat++ {
		if g.At(lat, lon).Known() {
			return true
		}
	}
	return false
}

func fillLongitude(g *Grid) int {
	filled := 0
	cols := g.shape.Cols
	for lat := range g.shape.Rows {
		row := g.Row(lat)
		anchors := knownIndices(row)
		if len(anchors) == 0 {
			// Nothing on this row: inherit the row above, or sea at the pole.
			for lon := range row {
				row[lon] = Sea
				if lat > 0 {
					row[lon] = g.At(lat-1, lon)
				}
			}
			filled += cols
			continue
		}
		for i, a := range anchors {
			b := anchors[(i+1)%len(anchors)]
			filled += splitRun(row, a, b, wrapIndex(b-a-1, cols))
		}
	}
	return filled
}

// splitRun fills the n unknown cells after index a, up to (not including)
// index b. The first ceil(n/2) cells take row[a], the rest take row[b].
func splitRun(row []Category, a, b, n int) int {
	left := (n + 1) / 2
	run := make([]Category, n)
	for k := range run {
		run[k] = row[b]
		if k < left {
			run[k] = row[a]
		}
	}
	circularCopy(row, a+1, run)
	return n
}

func knownIndices(row []Category) []int {
	var idx []int
	for i, c := range row {
		if c.Known() {
			idx = append(idx, i)
		}
	}
	return idx
}

func collapse(g *Grid) Mask {
	m := NewMask(g.shape)
	for i, c := range g.cells {
		if c == Land {
			m.cells[i] = 1
		}
	}
	return m
}

package domain

// wrapIndex reduces i into [0, n) treating the axis as circular.
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// circularSlice returns length values of row starting at start, wrapping
// modulo len(row) in both directions. The result is a fresh slice.
func circularSlice[T any](row []T, start, length int) []T {
	out := make([]T, length)
	n := len(row)
	for k := range length {
		out[k] = row[wrapIndex(start+k, n)]
	}
	return out
}

// circularCopy writes vals into row starting at start, wrapping modulo
// len(row). It is the write counterpart of circularSlice.
func circularCopy[T any](row []T, start int, vals []T) {
	n := len(row)
	for k, v := range vals {
		row[wrapIndex(start+k, n)] = v
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(0, 4))
	assert.Equal(t, 3, wrapIndex(-1, 4))
	assert.Equal(t, 0, wrapIndex(4, 4))
	assert.Equal(t, 1, wrapIndex(9, 4))
	assert.Equal(t, 2, wrapIndex(-10, 4))
}

func TestCircularSlice(t *testing.T) {
	row := []int{0, 1, 2, 3}

	assert.Equal(t, []int{3, 0, 1, 2, 3, 0}, circularSlice(row, -1, 6))
	assert.Equal(t, []int{2, 3, 0}, circularSlice(row, 2, 3))
	assert.Equal(t, []int{1, 2, 3, 0, 1, 2, 3, 0, 1}, circularSlice(row, 5, 9))
	assert.Empty(t, circularSlice(row, 0, 0))

	out := circularSlice(row, 0, 2)
	out[0] = 99
	assert.Equal(t, 0, row[0], "result must not alias the input")
}

func TestCircularCopy(t *testing.T) {
	row := []int{0, 1, 2, 3}
	circularCopy(row, 3, []int{7, 8, 9})
	assert.Equal(t, []int{8, 9, 2, 7}, row)

	row = []int{0, 1, 2, 3}
	circularCopy(row, -1, []int{5})
	assert.Equal(t, []int{0, 1, 2, 5}, row)

	row = []int{0, 1}
	circularCopy(row, 1, nil)
	assert.Equal(t, []int{0, 1}, row)
}

func TestCircularCopy_InvertsCircularSlice(t *testing.T) {
	src := []int{4, 5, 6, 7, 8}
	dst := make([]int, len(src))
	circularCopy(dst, 3, circularSlice(src, 3, len(src)))
	assert.Equal(t, src, dst)
}

func TestMaskFromCells(t *testing.T) {
	m, err := MaskFromCells(Shape{Rows: 2, Cols: 2}, []uint8{1, 0, 0, 1})
	assert.NoError(t, err)
	assert.Equal(t, []string{"10", "01"}, m.Rows())

	_, err = MaskFromCells(Shape{Rows: 2, Cols: 2}, []uint8{1, 0, 0})
	assert.Error(t, err)
	_, err = MaskFromCells(Shape{Rows: 1, Cols: 2}, []uint8{1, 2})
	assert.Error(t, err)
	_, err = MaskFromCells(Shape{}, nil)
	assert.Error(t, err)

	_, err = MaskFromRows([]string{"10", "1"})
	assert.Error(t, err)
	_, err = MaskFromRows([]string{"1x"})
	assert.Error(t, err)
}

package raster

import "fmt"

// DefaultIntNoData is the class code used for cells without a classification.
const DefaultIntNoData int32 = 0

// Int is an immutable single-band raster of class codes (land cover).
type Int struct {
	grid   Grid
	noData int32
	data   []int32
}

// NewInt validates g and copies data into a new Int.
// Complexity: O(R×C) time and memory.
func NewInt(g Grid, noData int32, data []int32) (*Int, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(data) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataLength, len(data), g.Cells())
	}
	cp := make([]int32, len(data))
	copy(cp, data)

	return &Int{grid: g, noData: noData, data: cp}, nil
}

// FilledInt returns an Int where every cell holds code.
func FilledInt(g Grid, noData, code int32) (*Int, error) {
	data := make([]int32, g.Cells())
	for i := range data {
		data[i] = code
	}
	return NewInt(g, noData, data)
}

// Grid returns the raster geometry.
func (r *Int) Grid() Grid { return r.grid }

// NoData returns the no-data class code.
func (r *Int) NoData() int32 { return r.noData }

// At returns the code at (row, col).
func (r *Int) At(row, col int) int32 {
	return r.data[r.grid.Index(row, col)]
}

// AtIndex returns the code at a row-major index.
func (r *Int) AtIndex(i int) int32 {
	return r.data[i]
}

// Valid reports whether cell i is classified.
func (r *Int) Valid(i int) bool {
	return r.data[i] != r.noData
}

// View exposes the backing slice; callers must treat it as read-only.
func (r *Int) View() []int32 {
	return r.data
}

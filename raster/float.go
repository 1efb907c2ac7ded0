package raster

import (
	"fmt"
	"math"
)

// Float is an immutable single-band raster of float64 values
// (elevation, slope, cost, accumulated field).
// data holds Rows×Cols values in row-major order.
type Float struct {
	grid   Grid
	noData float64
	data   []float64
}

// NewFloat validates g and copies data into a new Float.
// Returns ErrDataLength if len(data) != g.Cells().
// Complexity: O(R×C) time and memory.
func NewFloat(g Grid, noData float64, data []float64) (*Float, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(data) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataLength, len(data), g.Cells())
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return &Float{grid: g, noData: noData, data: cp}, nil
}

// WrapFloat builds a Float around data without copying it.
// The caller hands ownership over and must not touch data afterwards;
// producers use it for freshly allocated output buffers.
func WrapFloat(g Grid, noData float64, data []float64) (*Float, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(data) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataLength, len(data), g.Cells())
	}

	return &Float{grid: g, noData: noData, data: data}, nil
}

// FilledFloat returns a Float where every cell holds v.
func FilledFloat(g Grid, noData, v float64) (*Float, error) {
	data := make([]float64, g.Cells())
	for i := range data {
		data[i] = v
	}

	return WrapFloat(g, noData, data)
}

// Grid returns the raster geometry.
func (f *Float) Grid() Grid { return f.grid }

// NoData returns the no-data sentinel.
func (f *Float) NoData() float64 { return f.noData }

// At returns the value at (row, col). It panics when out of bounds.
func (f *Float) At(row, col int) float64 {
	return f.data[f.grid.Index(row, col)]
}

// AtIndex returns the value at a row-major index.
func (f *Float) AtIndex(i int) float64 {
	return f.data[i]
}

// Valid reports whether cell i carries data: finite and not the sentinel.
func (f *Float) Valid(i int) bool {
	v := f.data[i]
	return v != f.noData && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidCount returns the number of cells carrying data.
func (f *Float) ValidCount() int {
	n := 0
	for i := range f.data {
		if f.Valid(i) {
			n++
		}
	}
	return n
}

// View exposes the backing slice for fast sequential reads.
// Callers must treat it as read-only.
func (f *Float) View() []float64 {
	return f.data
}

// Values returns a copy of the backing slice.
func (f *Float) Values() []float64 {
	cp := make([]float64, len(f.data))
	copy(cp, f.data)
	return cp
}

// Range returns the minimum and maximum valid values and ok=false
// when the raster has no valid cell.
func (f *Float) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i, v := range f.data {
		if !f.Valid(i) {
			continue
		}
		ok = true
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

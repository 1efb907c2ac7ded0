package raster

import "fmt"

// Mask is an immutable boolean raster: source cells (roads) or validity
// (inside the region boundary).
type Mask struct {
	grid Grid
	bits []bool
}

// NewMask validates g and copies bits into a new Mask.
func NewMask(g Grid, bits []bool) (*Mask, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(bits) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataLength, len(bits), g.Cells())
	}
	cp := make([]bool, len(bits))
	copy(cp, bits)

	return &Mask{grid: g, bits: cp}, nil
}

// FullMask returns a Mask with every cell set.
func FullMask(g Grid) (*Mask, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	bits := make([]bool, g.Cells())
	for i := range bits {
		bits[i] = true
	}
	return &Mask{grid: g, bits: bits}, nil
}

// MaskFromCells returns a Mask with only the listed (row, col) cells set.
// Cells outside the grid are ignored.
func MaskFromCells(g Grid, cells ...[2]int) (*Mask, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	bits := make([]bool, g.Cells())
	for _, rc := range cells {
		if g.InBounds(rc[0], rc[1]) {
			bits[g.Index(rc[0], rc[1])] = true
		}
	}
	return &Mask{grid: g, bits: bits}, nil
}

// MaskFromFloat sets every valid cell of f whose value satisfies keep.
// A nil keep selects valid non-zero cells, the usual encoding of rasterized
// roads and boundaries.
func MaskFromFloat(f *Float, keep func(float64) bool) *Mask {
	if keep == nil {
		keep = func(v float64) bool { return v != 0 }
	}
	bits := make([]bool, f.grid.Cells())
	for i := range bits {
		bits[i] = f.Valid(i) && keep(f.data[i])
	}
	return &Mask{grid: f.grid, bits: bits}
}

// Grid returns the raster geometry.
func (m *Mask) Grid() Grid { return m.grid }

// At reports whether (row, col) is set.
func (m *Mask) At(row, col int) bool {
	return m.bits[m.grid.Index(row, col)]
}

// AtIndex reports whether the row-major cell i is set.
func (m *Mask) AtIndex(i int) bool {
	return m.bits[i]
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// And returns a new Mask set where both m and o are set.
func (m *Mask) And(o *Mask) (*Mask, error) {
	if err := m.grid.Aligned(o.grid); err != nil {
		return nil, err
	}
	bits := make([]bool, len(m.bits))
	for i := range bits {
		bits[i] = m.bits[i] && o.bits[i]
	}
	return &Mask{grid: m.grid, bits: bits}, nil
}

// View exposes the backing slice; callers must treat it as read-only.
func (m *Mask) View() []bool {
	return m.bits
}

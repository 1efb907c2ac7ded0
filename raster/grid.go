package raster

import (
	"fmt"
	"math"
)

// DefaultNoData is the sentinel written for cells without a value.
const DefaultNoData = -9999.0

// alignTolerance bounds the relative difference accepted between two
// floating-point georeference parameters before grids count as mismatched.
const alignTolerance = 1e-9

// Grid describes the common geometry of every raster in one analysis.
// Cells are square; (OriginX, OriginY) is the outer top-left corner in the
// projected CRS and rows grow southwards.
type Grid struct {
	Rows, Cols int     // raster shape
	Resolution float64 // cell size in metres
	OriginX    float64 // x of the top-left corner
	OriginY    float64 // y of the top-left corner
	CRS        string  // proj4 definition of the projection, may be empty
}

// NewGrid validates and returns a Grid with its origin at (0, 0) and no CRS.
// Use WithOrigin and WithCRS to georeference it.
func NewGrid(rows, cols int, resolution float64) (Grid, error) {
	g := Grid{Rows: rows, Cols: cols, Resolution: resolution}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}

	return g, nil
}

// Validate reports whether g describes a usable raster.
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return ErrEmptyGrid
	}
	if !(g.Resolution > 0) || math.IsInf(g.Resolution, 0) {
		return fmt.Errorf("%w: %v", ErrBadResolution, g.Resolution)
	}

	return nil
}

// WithOrigin returns a copy of g anchored at the given top-left corner.
func (g Grid) WithOrigin(x, y float64) Grid {
	g.OriginX, g.OriginY = x, y
	return g
}

// WithCRS returns a copy of g carrying the given proj4 definition.
func (g Grid) WithCRS(crs string) Grid {
	g.CRS = crs
	return g
}

// Cells returns Rows×Cols.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

// InBounds reports whether (row, col) lies inside the grid.
// Complexity: O(1).
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Index maps (row, col) to its row-major cell index.
// Complexity: O(1).
func (g Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func (g Grid) Coordinate(idx int) (row, col int) {
	return idx / g.Cols, idx % g.Cols
}

// CellCenter returns the projected coordinates of the centre of (row, col).
func (g Grid) CellCenter(row, col int) (x, y float64) {
	x = g.OriginX + (float64(col)+0.5)*g.Resolution
	y = g.OriginY - (float64(row)+0.5)*g.Resolution
	return x, y
}

// Aligned returns nil when g and o share shape, resolution, origin and CRS,
// and an error wrapping ErrInputMismatch describing the first difference otherwise.
// Nothing is ever resampled or auto-corrected here.
func (g Grid) Aligned(o Grid) error {
	switch {
	case g.Rows != o.Rows || g.Cols != o.Cols:
		return fmt.Errorf("%w: shape %dx%d vs %dx%d", ErrInputMismatch, g.Rows, g.Cols, o.Rows, o.Cols)
	case !closeEnough(g.Resolution, o.Resolution):
		return fmt.Errorf("%w: resolution %g vs %g", ErrInputMismatch, g.Resolution, o.Resolution)
	case !closeEnough(g.OriginX, o.OriginX) || !closeEnough(g.OriginY, o.OriginY):
		return fmt.Errorf("%w: origin (%g,%g) vs (%g,%g)", ErrInputMismatch, g.OriginX, g.OriginY, o.OriginX, o.OriginY)
	case g.CRS != "" && o.CRS != "" && g.CRS != o.CRS:
		return fmt.Errorf("%w: crs %q vs %q", ErrInputMismatch, g.CRS, o.CRS)
	}

	return nil
}

// RequireAligned checks that every grid is aligned with the first one.
func RequireAligned(grids ...Grid) error {
	for i := 1; i < len(grids); i++ {
		if err := grids[0].Aligned(grids[i]); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}

	return nil
}

func closeEnough(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= alignTolerance*scale
}

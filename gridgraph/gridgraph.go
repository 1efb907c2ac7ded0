package gridgraph

import (
	"fmt"

	"github.com/katalvlaran/remoteness/raster"
)

// NewGridGraph builds a GridGraph over g where passable[i] marks traversable cells.
// It copies passable to ensure immutability.
// Returns the raster validation error for a bad grid, ErrPassableLength on a
// size mismatch and ErrConnectivity for unknown connectivity.
// Complexity: O(R×C) time and memory.
func NewGridGraph(g raster.Grid, passable []bool, opts GridOptions) (*GridGraph, error) {
	// 1) Validate geometry and mask length.
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(passable) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPassableLength, len(passable), g.Cells())
	}
	// 2) Pick the offset table for the connectivity.
	var offsets []Offset
	switch opts.Conn {
	case Conn4:
		offsets = conn4Offsets
	case Conn8:
		offsets = conn8Offsets
	default:
		return nil, fmt.Errorf("%w: %d", ErrConnectivity, opts.Conn)
	}
	// 3) Copy the mask so the graph stays immutable.
	cp := make([]bool, len(passable))
	copy(cp, passable)

	return &GridGraph{grid: g, passable: cp, offsets: offsets}, nil
}

// FromCost builds a GridGraph in which every valid cost cell is passable.
// No-data cost cells act as barriers. A valid cell with a cost that is not
// positive stays passable, so the solver pricing it can reject it.
func FromCost(cost *raster.Float, opts GridOptions) (*GridGraph, error) {
	passable := make([]bool, cost.Grid().Cells())
	for i := range passable {
		passable[i] = cost.Valid(i)
	}

	return NewGridGraph(cost.Grid(), passable, opts)
}

// From2D builds a unit-resolution GridGraph from rows of cell values;
// non-zero values are passable.
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	passable := make([]bool, 0, h*w)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for _, v := range row {
			passable = append(passable, v != 0)
		}
	}
	g, err := raster.NewGrid(h, w, 1)
	if err != nil {
		return nil, err
	}

	return NewGridGraph(g, passable, GridOptions{Conn: conn})
}

// Grid returns the underlying raster geometry.
func (gg *GridGraph) Grid() raster.Grid { return gg.grid }

// Cells returns the number of cells, passable or not.
func (gg *GridGraph) Cells() int { return gg.grid.Cells() }

// Passable reports whether cell idx is a vertex.
// Complexity: O(1).
func (gg *GridGraph) Passable(idx int) bool { return gg.passable[idx] }

// InBounds reports whether (row, col) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(row, col int) bool { return gg.grid.InBounds(row, col) }

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (row, col int) { return gg.grid.Coordinate(idx) }

// Neighbors calls fn for each passable neighbor of idx with its index and
// step length in cell units. Iteration stops early when fn returns false.
// Complexity: O(d), d = 4 or 8.
func (gg *GridGraph) Neighbors(idx int, fn func(j int, step float64) bool) {
	row, col := gg.grid.Coordinate(idx)
	for _, o := range gg.offsets {
		// 1) Skip directions that leave the grid.
		r, c := row+o.DRow, col+o.DCol
		if !gg.grid.InBounds(r, c) {
			continue
		}
		// 2) Skip barriers.
		j := gg.grid.Index(r, c)
		if !gg.passable[j] {
			continue
		}
		// 3) Visit; the callback may stop the walk.
		if !fn(j, o.Step) {
			return
		}
	}
}

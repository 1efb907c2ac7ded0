package gridgraph

import (
	"math"

	"github.com/katalvlaran/remoteness/raster"
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Offset is one neighbor direction. Step is the centre-to-centre distance
// in cell units: 1 for orthogonal moves, √2 for diagonal ones.
type Offset struct {
	DRow, DCol int
	Step       float64
}

var (
	conn4Offsets = []Offset{{-1, 0, 1}, {0, 1, 1}, {1, 0, 1}, {0, -1, 1}}
	conn8Offsets = []Offset{
		{-1, 0, 1}, {-1, 1, math.Sqrt2}, {0, 1, 1}, {1, 1, math.Sqrt2},
		{1, 0, 1}, {1, -1, math.Sqrt2}, {0, -1, 1}, {-1, -1, math.Sqrt2},
	}
)

// GridOptions contains tunable parameters for grid analysis.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultGridOptions returns a GridOptions with Conn=Conn8, the travel
// model used for accumulated-cost fields.
func DefaultGridOptions() GridOptions {
	return GridOptions{Conn: Conn8}
}

// GridGraph treats the cells of a raster.Grid as graph vertices. A cell is a
// vertex only when it is passable; edges join passable neighbors.
// It is immutable once built.
type GridGraph struct {
	grid     raster.Grid
	passable []bool
	offsets  []Offset
}

package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrPassableLength indicates a passability slice that does not cover the grid.
	ErrPassableLength = errors.New("gridgraph: passable length does not match grid size")
	// ErrConnectivity indicates an unknown Connectivity value.
	ErrConnectivity = errors.New("gridgraph: connectivity must be Conn4 or Conn8")
)

package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/remoteness/gridgraph"
)

////////////////////////////////////////////////////////////////////////////////
// Example: ConnectedComponents
////////////////////////////////////////////////////////////////////////////////

// ExampleGridGraph_ConnectedComponents identifies contiguous passable regions.
// A lake (0) splits the map into a western and an eastern region.
func ExampleGridGraph_ConnectedComponents() {
	grid := [][]int{
		{1, 1, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 0, 1},
	}
	gg, _ := gridgraph.From2D(grid, gridgraph.Conn8)

	comps := gg.ConnectedComponents()
	fmt.Println("components:", len(comps))
	for i, comp := range comps {
		fmt.Printf("component %d:", i)
		for _, idx := range comp {
			r, c := gg.Coordinate(idx)
			fmt.Printf(" (%d,%d)", r, c)
		}
		fmt.Println()
	}
	// Output:
	// components: 2
	// component 0: (0,0) (0,1) (1,0) (2,1) (2,0)
	// component 1: (0,3) (1,3) (2,3)
}

package dijkstra_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/remoteness/dijkstra"
	"github.com/katalvlaran/remoteness/gridgraph"
	"github.com/katalvlaran/remoteness/raster"
)

// ExampleDijkstra walks a 1×4 strip of 10 m cells from its western end.
// The third cell is rough ground (cost 3) and the last one is a lake.
func ExampleDijkstra() {
	g, _ := raster.NewGrid(1, 4, 10)
	cost, _ := raster.NewFloat(g, raster.DefaultNoData, []float64{1, 1, 3, raster.DefaultNoData})
	gg, _ := gridgraph.FromCost(cost, gridgraph.DefaultGridOptions())

	res, err := dijkstra.Dijkstra(context.Background(), gg, cost, dijkstra.Sources(0))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Dist)
	fmt.Println("settled:", res.Settled)
	// Output:
	// [0 10 30 +Inf]
	// settled: 3
}

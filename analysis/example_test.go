package analysis_test

import (
	"fmt"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/raster"
)

// ExampleExtract ranks the two most remote cells of a 1 km field, at least
// 1.5 km apart.
func ExampleExtract() {
	g, _ := raster.NewGrid(2, 4, 1000)
	r, _ := raster.NewFloat(g, raster.DefaultNoData, []float64{
		900, 4200, 4100, 300,
		800, 3900, 1200, 2500,
	})
	f := &field.Field{Raster: r, Mode: field.ModeEuclidean, Unit: field.ModeEuclidean.Unit()}

	rep, _ := analysis.Extract(f, nil, analysis.WithTopN(2), analysis.WithMinSeparation(1500))
	for _, p := range rep.Points {
		fmt.Printf("#%d (%d,%d) %.0f %s\n", p.Rank, p.Row, p.Col, p.Value, p.Unit)
	}
	fmt.Printf("median %.0f\n", rep.Stats.Median)
	// Output:
	// #1 (0,1) 4200 m
	// #2 (1,3) 2500 m
	// median 1850
}

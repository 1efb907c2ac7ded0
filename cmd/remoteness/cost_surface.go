package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/pipeline"
	"github.com/katalvlaran/remoteness/raster"
)

func newCostSurfaceCmd(a *app) *cobra.Command {
	var elevation, landcover, out, slopeOut string
	cmd := &cobra.Command{
		Use:   "cost-surface",
		Short: "Build the travel-cost grid from elevation and land cover",
		RunE: func(cmd *cobra.Command, _ []string) error {
			elev, err := raster.LoadFloat(elevation)
			if err != nil {
				return err
			}
			lc, err := raster.LoadInt(landcover)
			if err != nil {
				return err
			}
			s, err := pipeline.CostSurface(cmd.Context(), a.cfg, elev, lc, a.log)
			if err != nil {
				return err
			}
			if err := raster.SaveFloat(out, s.Cost); err != nil {
				return err
			}
			if err := saveOptional(slopeOut, s.Slope, "slope"); err != nil {
				return err
			}
			a.log.Info("cost surface written", zap.String("out", out),
				zap.Float64("min", s.Report.MinCost), zap.Float64("max", s.Report.MaxCost),
				zap.Int("unknown_cells", s.Report.UnknownCells))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&elevation, "elevation", "", "elevation grid in metres")
	fl.StringVar(&landcover, "landcover", "", "land-cover class grid")
	fl.StringVarP(&out, "out", "o", "", "cost grid to write")
	fl.StringVar(&slopeOut, "slope-out", "", "also write the slope grid in degrees")
	for _, name := range []string{"elevation", "landcover", "out"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

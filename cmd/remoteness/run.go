package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/cache"
	"github.com/katalvlaran/remoteness/pipeline"
)

type runFlags struct {
	sources, validity    string
	elevation, landcover string
	cost                 string
	out, geojson         string
	fieldOut, costOut    string
	slopeOut, metricsOut string
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole chain from input rasters to the ranked report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.sources, "sources", "", "road/source mask grid (non-zero cells are sources)")
	fl.StringVar(&f.validity, "validity", "", "region mask grid (non-zero cells are inside)")
	fl.StringVar(&f.elevation, "elevation", "", "elevation grid in metres")
	fl.StringVar(&f.landcover, "landcover", "", "land-cover class grid")
	fl.StringVar(&f.cost, "cost", "", "precomputed cost grid, replaces elevation and land cover for the cost")
	fl.StringVarP(&f.out, "out", "o", "-", "report JSON path, - for stdout")
	fl.StringVar(&f.geojson, "geojson", "", "write the ranked points as a GeoJSON FeatureCollection")
	fl.StringVar(&f.fieldOut, "field-out", "", "write the accumulated field grid")
	fl.StringVar(&f.costOut, "cost-out", "", "write the cost grid")
	fl.StringVar(&f.slopeOut, "slope-out", "", "write the slope grid")
	fl.StringVar(&f.metricsOut, "metrics", "", "write Prometheus metrics in text format")
	_ = cmd.MarkFlagRequired("sources")
	return cmd
}

func (a *app) run(cmd *cobra.Command, f runFlags) error {
	in := pipeline.Inputs{Config: a.cfg, Logger: a.log}
	var err error
	if in.Sources, err = loadOptionalMask(f.sources); err != nil {
		return err
	}
	if in.Validity, err = loadOptionalMask(f.validity); err != nil {
		return err
	}
	if in.Elevation, err = loadOptionalFloat(f.elevation); err != nil {
		return err
	}
	if in.LandCover, err = loadOptionalInt(f.landcover); err != nil {
		return err
	}
	if in.Cost, err = loadOptionalFloat(f.cost); err != nil {
		return err
	}
	if a.cfg.Cache.Enabled {
		store, err := cache.Open(cache.Options{Dir: a.cfg.Cache.Dir, InMemory: a.cfg.Cache.InMemory, Logger: a.log})
		if err != nil {
			return err
		}
		defer store.Close()
		in.Store = store
	}

	res, err := pipeline.Run(cmd.Context(), in)
	if err != nil {
		return err
	}
	if err := saveOptional(f.slopeOut, res.Slope, "slope"); err != nil {
		return err
	}
	if res.Cost != nil {
		if err := saveOptional(f.costOut, res.Cost.Raster(), "cost"); err != nil {
			return err
		}
	}
	if err := saveOptional(f.fieldOut, res.Field.Raster, "field"); err != nil {
		return err
	}
	if err := writeReport(cmd, res.Report, f.out, f.geojson); err != nil {
		return err
	}
	a.log.Info("report written", zap.String("run", res.RunID), zap.String("out", f.out),
		zap.Bool("cost_cached", res.CostCached), zap.Bool("field_cached", res.FieldCached))

	return writeMetrics(f.metricsOut)
}

func writeReport(cmd *cobra.Command, rep *analysis.Report, out, geojsonPath string) error {
	if err := writeJSON(cmd.OutOrStdout(), out, rep); err != nil {
		return err
	}
	if geojsonPath == "" {
		return nil
	}
	b, err := rep.FeatureCollection().MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(geojsonPath, b, 0o644)
}

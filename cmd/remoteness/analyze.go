package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/remoteness/analysis"
	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/pipeline"
	"github.com/katalvlaran/remoteness/raster"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var fieldPath, validity, landcover, elevation, mode, out, geojsonPath string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the most unreachable points of an accumulated field",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.cfg.FieldMode()
			if mode != "" {
				var err error
				if m, err = field.ParseMode(mode); err != nil {
					return err
				}
			}
			fr, err := raster.LoadFloat(fieldPath)
			if err != nil {
				return err
			}
			valid, err := loadOptionalMask(validity)
			if err != nil {
				return err
			}
			candidates := valid
			if landcover != "" {
				lc, err := raster.LoadInt(landcover)
				if err != nil {
					return err
				}
				if candidates, err = analysis.LandMask(lc, valid, a.cfg.Analysis.ExcludeLandCover); err != nil {
					return err
				}
			}
			proj, err := pipeline.Projector(a.cfg, fr.Grid())
			if err != nil {
				return err
			}
			f := pipeline.FieldFromRaster(fr, m, valid)
			rep, err := analysis.Extract(f, candidates, append(a.cfg.AnalysisOptions(a.log), analysis.WithProjector(proj))...)
			if err != nil {
				return err
			}
			if elevation != "" {
				dem, err := raster.LoadFloat(elevation)
				if err != nil {
					return err
				}
				ext, ok, err := analysis.FindElevationExtremes(dem, valid, proj)
				if err != nil {
					return err
				}
				if ok {
					rep.Elevation = ext
				}
			}
			return writeReport(cmd, rep, out, geojsonPath)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&fieldPath, "field", "", "accumulated field grid")
	fl.StringVar(&validity, "validity", "", "region mask grid")
	fl.StringVar(&landcover, "landcover", "", "land-cover grid; excluded classes are never reported")
	fl.StringVar(&elevation, "elevation", "", "elevation grid for the highest and lowest points")
	fl.StringVar(&mode, "mode", "", "mode the field was solved in, for its unit")
	fl.StringVarP(&out, "out", "o", "-", "report JSON path, - for stdout")
	fl.StringVar(&geojsonPath, "geojson", "", "write the ranked points as a GeoJSON FeatureCollection")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/field"
	"github.com/katalvlaran/remoteness/raster"
)

func newDistanceCmd(a *app) *cobra.Command {
	var sources, validity, cost, out, mode string
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Accumulate distance or cost from the source cells",
		Long: `distance solves the accumulated field in the configured mode. Cost-weighted
mode needs --cost; Euclidean mode ignores it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.cfg.FieldMode()
			if mode != "" {
				var err error
				if m, err = field.ParseMode(mode); err != nil {
					return err
				}
			}
			src, err := raster.LoadMask(sources)
			if err != nil {
				return err
			}
			valid, err := loadOptionalMask(validity)
			if err != nil {
				return err
			}
			var c *raster.Float
			if m == field.ModeCostWeighted {
				if cost == "" {
					return field.ErrMissingCost
				}
				if c, err = raster.LoadFloat(cost); err != nil {
					return err
				}
			}
			s, err := field.New(m, c, a.cfg.FieldOptions(a.log)...)
			if err != nil {
				return err
			}
			f, err := s.Solve(cmd.Context(), src, valid)
			if err != nil {
				return err
			}
			if err := raster.SaveFloat(out, f.Raster); err != nil {
				return err
			}
			a.log.Info("field written", zap.String("out", out), zap.String("mode", string(f.Mode)),
				zap.Int("unreached", f.Unreached), zap.Int("isolated", f.Isolated))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&sources, "sources", "", "road/source mask grid")
	fl.StringVar(&validity, "validity", "", "region mask grid")
	fl.StringVar(&cost, "cost", "", "cost grid for cost-weighted mode")
	fl.StringVar(&mode, "mode", "", "override the configured mode: euclidean or cost_weighted")
	fl.StringVarP(&out, "out", "o", "", "field grid to write")
	_ = cmd.MarkFlagRequired("sources")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

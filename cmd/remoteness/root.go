package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/config"
	"github.com/katalvlaran/remoteness/logging"
)

// app is the state shared by every sub-command once flags are parsed.
type app struct {
	configPath string
	verbose    bool
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "remoteness",
		Short: "Locate the points hardest to reach from a road network",
		Long: `remoteness turns elevation and land cover into a travel-cost surface,
accumulates the cost of reaching every cell from the road cells, and reports
the most unreachable, well-separated locations of the region.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file (defaults apply when empty)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "human-readable debug logging")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newRunCmd(a),
		newCostSurfaceCmd(a),
		newDistanceCmd(a),
		newAnalyzeCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	level := a.logLevel
	if a.verbose {
		level = "debug"
	}
	log, err := logging.New(level, a.verbose)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

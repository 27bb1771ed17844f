package commands

import (
	"fmt"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/de-tools/factory-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/factory-atlas/pkg/services/analysis"
	"github.com/de-tools/factory-atlas/pkg/services/config"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/spf13/cobra"
)

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	var (
		configPath string
		dataDir    string
		period     string
		station    string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze factory data and print a dashboard report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			p, ok := domain.ParsePeriod(period)
			if !ok {
				return fmt.Errorf("invalid period %q, expected one of: daily, weekly, monthly, quarterly", period)
			}

			store, err := csvdata.NewStore(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open data directory: %w", err)
			}

			analyzer := analysis.NewAnalyzer(store, cfg.AnalysisSettings())
			report, err := analyzer.BuildReport(cmd.Context(), analysis.Request{
				Period:  p,
				Station: station,
			})
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			return reporter.Handle(&report)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the factory datasets")
	cmd.Flags().StringVar(&period, "period", "daily", "Aggregation period (daily, weekly, monthly, quarterly)")
	cmd.Flags().StringVar(&station, "station", "", "Restrict station analysis to a single station")

	return cmd
}

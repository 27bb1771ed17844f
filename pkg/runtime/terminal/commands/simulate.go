package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/factory-atlas/pkg/services/config"
	"github.com/de-tools/factory-atlas/pkg/services/simulation"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/spf13/cobra"
)

func NewSimulateCmd() *cobra.Command {
	var (
		configPath string
		dataDir    string
		runs       int
		simTime    float64
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the factory simulation and write fresh datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			simCfg := cfg.SimulationConfig()
			if cmd.Flags().Changed("runs") {
				simCfg.Runs = runs
			}
			if cmd.Flags().Changed("sim-time") {
				simCfg.SimTime = simTime
			}
			if cmd.Flags().Changed("seed") {
				simCfg.Seed = seed
			}

			writer, err := csvdata.NewWriter(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to prepare data directory: %w", err)
			}

			runner := simulation.NewRunner(simCfg, writer)
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Simulation completed: %d runs, %d watches produced in %s\n",
				summary.Runs, summary.TotalProduction, summary.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory to write the factory datasets to")
	cmd.Flags().IntVar(&runs, "runs", 0, "Number of simulation replications")
	cmd.Flags().Float64Var(&simTime, "sim-time", 0, "Simulated time units per replication")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 seeds from the clock)")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/de-tools/factory-atlas/pkg/server"
	"github.com/de-tools/factory-atlas/pkg/services/analysis"
	"github.com/de-tools/factory-atlas/pkg/services/config"
	"github.com/de-tools/factory-atlas/pkg/services/simulation"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Factory Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	store, err := csvdata.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	writer, err := csvdata.NewWriter(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}

	analyzer := analysis.NewAnalyzer(store, cfg.AnalysisSettings())
	runner := simulation.NewRunner(cfg.SimulationConfig(), writer)

	logger.Info().Str("data_dir", cfg.DataDir).Msg("datasets directory ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analytics: analyzer,
			Simulator: runner,
			Logger:    logger,
		},
	})

	return api.Start()
}

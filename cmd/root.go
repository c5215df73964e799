package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/config"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "hoopsfeat",
	Short: "Basketball game feature engineering tool",
	Long:  "Ingest game logs and assemble leakage-free pre-game features for prediction models.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		cfg = config.Default()
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite feature store")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(rollingCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(matchupCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(dropCmd)
}

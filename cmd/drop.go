package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/storage"
)

var (
	dropForce        bool
	dropFeaturesOnly bool
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the feature store, or clear assembled features",
	Long: `Permanently delete the SQLite feature store, losing ingested games and
assembled features. With --features-only, truncate the assembled feature
rows instead and keep the game log, e.g. before re-assembling with
different options.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().BoolVar(&dropFeaturesOnly, "features-only", false, "clear assembled feature rows, keep the game log")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		target := dbPath
		if dropFeaturesOnly {
			target = "assembled feature rows in " + dbPath
		}
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", target)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if dropFeaturesOnly {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if err := db.DropFeatureRecords(); err != nil {
			return fmt.Errorf("clear features: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Cleared assembled feature rows; game log kept.")
		return nil
	}

	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Feature store does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove feature store: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/dataset"
	"github.com/courtside/go-hoops-features/internal/storage"
)

var (
	dsName    string
	dsVersion string
	dsOutDir  string
	dsScale   string
	dsTrain   float64
	dsVal     float64
	dsTest    float64
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build a train/val/test dataset from assembled features",
	Long: `Splits the stored feature rows chronologically, fits the scaler on the
training partition only, and writes CSV matrices plus metadata.

Example:
  hoopsfeat dataset --name nba --version v1 --out-dir datasets`,
	Args: cobra.NoArgs,
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&dsName, "name", "", "dataset name (required)")
	datasetCmd.Flags().StringVar(&dsVersion, "version", "v1", "dataset version label")
	datasetCmd.Flags().StringVar(&dsOutDir, "out-dir", "datasets", "output directory root")
	datasetCmd.Flags().StringVar(&dsScale, "scale", "standard", "feature scaling: standard or minmax")
	datasetCmd.Flags().Float64Var(&dsTrain, "train", 0, "train ratio (0 = config default)")
	datasetCmd.Flags().Float64Var(&dsVal, "val", 0, "validation ratio (0 = config default)")
	datasetCmd.Flags().Float64Var(&dsTest, "test", 0, "test ratio (0 = config default)")
	_ = datasetCmd.MarkFlagRequired("name")
}

func runDataset(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	records, err := db.LoadFeatureRecords()
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no feature rows stored; run features first")
	}
	for _, r := range records {
		if !r.HasLabel {
			return fmt.Errorf("stored feature rows carry no outcome labels; re-run features without --no-labels")
		}
	}

	train, val, test := dsTrain, dsVal, dsTest
	if train == 0 && val == 0 && test == 0 {
		train, val, test = cfg.TrainRatio, cfg.ValRatio, cfg.TestRatio
	}

	split, err := dataset.TimeSplit(records, train, val, test)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}

	meta, err := dataset.Save(dsOutDir, dsName, dsVersion, split, dsScale)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Dataset %s/%s (%s)\n", dsName, dsVersion, meta.DatasetID)
	fmt.Fprintf(os.Stdout, "  train=%d val=%d test=%d  scale=%s  features=%d\n",
		meta.TrainSamples, meta.ValSamples, meta.TestSamples, meta.ScaleMethod, len(meta.FeatureNames))
	return nil
}

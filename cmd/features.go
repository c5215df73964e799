package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/dataset"
	"github.com/courtside/go-hoops-features/internal/engine"
	"github.com/courtside/go-hoops-features/internal/model"
	"github.com/courtside/go-hoops-features/internal/report"
	"github.com/courtside/go-hoops-features/internal/storage"
)

var (
	featWindow     int
	featMinHistory int
	featWorkers    int
	featNoLabels   bool
	featOut        string
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Assemble pre-game feature rows from the stored game log",
	Long: `Builds one feature row per stored game using only games played strictly
before each game's date. Rows are stored for dataset building; use --out
to also export them as CSV.`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().IntVar(&featWindow, "window", 0, "trailing game window (0 = config default)")
	featuresCmd.Flags().IntVar(&featMinHistory, "min-history", -1, "skip games with fewer prior games per team (-1 = config default)")
	featuresCmd.Flags().IntVar(&featWorkers, "workers", 0, "parallel assembly workers (0 = config default)")
	featuresCmd.Flags().BoolVar(&featNoLabels, "no-labels", false, "omit outcome labels from the rows")
	featuresCmd.Flags().StringVar(&featOut, "out", "", "also export rows as CSV to this path")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.LoadGames()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no games stored; run ingest first")
	}

	store, err := engine.BuildStore(games)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	ix := engine.BuildParticipantIndex(store)
	px := engine.BuildPairIndex(ix)

	opts := engine.Options{
		Window:        featWindow,
		MinHistory:    featMinHistory,
		IncludeLabels: !featNoLabels,
		Workers:       featWorkers,
	}
	if opts.Window == 0 {
		opts.Window = cfg.Window
	}
	if opts.MinHistory < 0 {
		opts.MinHistory = cfg.MinHistory
	}
	if opts.Workers == 0 {
		opts.Workers = cfg.Workers
	}

	fmt.Fprintf(os.Stderr, "Assembling features for %d game(s)...\n", store.Len())
	records := engine.Assemble(store, ix, px, opts)

	if err := db.DropFeatureRecords(); err != nil {
		return fmt.Errorf("clear old features: %w", err)
	}
	if err := db.InsertFeatureRecords(records); err != nil {
		return fmt.Errorf("store features: %w", err)
	}

	if featOut != "" {
		if err := writeFeatureCSV(featOut, records, !featNoLabels); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Exported %d row(s) to %s\n", len(records), featOut)
	}

	report.PrintFeatureSummary(os.Stdout, len(records), store.Len()-len(records),
		fmt.Sprintf("window=%d min-history=%d workers=%d", opts.Window, opts.MinHistory, opts.Workers))
	return nil
}

func writeFeatureCSV(path string, records []model.FeatureRecord, withLabels bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"game_id", "date"}, dataset.Columns()...)
	if withLabels {
		header = append(header, dataset.TargetColumn)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{strconv.FormatInt(r.GameID, 10), r.Date.Format("2006-01-02")}
		for _, v := range dataset.Vector(r) {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if withLabels {
			row = append(row, strconv.Itoa(r.HomeWin))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

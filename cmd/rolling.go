package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/engine"
	"github.com/courtside/go-hoops-features/internal/storage"
)

var (
	rollWindows []int
	rollOut     string
)

var rollingCmd = &cobra.Command{
	Use:   "rolling",
	Short: "Export per-team rolling features as CSV",
	Long: `Builds one row per (game, team) appearance with trailing scoring means
over several window sizes plus a consistency score. History always excludes
the game the row is attached to.`,
	Args: cobra.NoArgs,
	RunE: runRolling,
}

func init() {
	rollingCmd.Flags().IntSliceVar(&rollWindows, "windows", nil, "trailing-mean windows (default from config)")
	rollingCmd.Flags().StringVar(&rollOut, "out", "", "output CSV path (stdout if omitted)")
}

func runRolling(cmd *cobra.Command, args []string) error {
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

	// Resolve the window set once: the CSV header below must describe the
	// exact windows the engine computes.
	windows := rollWindows
	if len(windows) == 0 {
		windows = cfg.RollingWindows
	}
	if len(windows) == 0 {
		windows = engine.DefaultWindows
	}
	records := engine.Rolling(store, ix, engine.RollingOptions{Windows: windows})

	out := os.Stdout
	if rollOut != "" {
		f, err := os.Create(rollOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	header := []string{"game_id", "team_id", "date", "home"}
	for _, win := range windows {
		header = append(header,
			fmt.Sprintf("avg_scored_%d", win),
			fmt.Sprintf("avg_allowed_%d", win),
			fmt.Sprintf("avg_diff_%d", win))
	}
	header = append(header, "consistency")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.GameID, 10),
			strconv.FormatInt(r.TeamID, 10),
			r.Date.Format("2006-01-02"),
			strconv.FormatBool(r.Home),
		}
		for _, win := range r.Windows {
			row = append(row,
				strconv.FormatFloat(win.AvgScored, 'g', -1, 64),
				strconv.FormatFloat(win.AvgAllowed, 'g', -1, 64),
				strconv.FormatFloat(win.AvgDiff, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(r.Consistency, 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if rollOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d row(s) to %s\n", len(records), rollOut)
	}
	return nil
}

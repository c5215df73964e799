package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/engine"
	"github.com/courtside/go-hoops-features/internal/report"
	"github.com/courtside/go-hoops-features/internal/storage"
)

var (
	muHome   int64
	muAway   int64
	muAsOf   string
	muWindow int
)

var matchupCmd = &cobra.Command{
	Use:   "matchup",
	Short: "Show the feature row for a hypothetical upcoming game",
	Long: `Computes the pre-game feature vector for a home/away pairing as of a
given date, using only games played strictly before it.

Example:
  hoopsfeat matchup --home 14 --away 23 --asof 2025-04-01`,
	Args: cobra.NoArgs,
	RunE: runMatchup,
}

func init() {
	matchupCmd.Flags().Int64Var(&muHome, "home", 0, "home team id (required)")
	matchupCmd.Flags().Int64Var(&muAway, "away", 0, "away team id (required)")
	matchupCmd.Flags().StringVar(&muAsOf, "asof", "", "cutoff date YYYY-MM-DD (default: now)")
	matchupCmd.Flags().IntVar(&muWindow, "window", 0, "trailing game window (0 = config default)")
	_ = matchupCmd.MarkFlagRequired("home")
	_ = matchupCmd.MarkFlagRequired("away")
}

func runMatchup(cmd *cobra.Command, args []string) error {
	if muHome == muAway {
		return fmt.Errorf("home and away team ids must differ")
	}

	asOf := time.Now().UTC()
	if muAsOf != "" {
		var err error
		asOf, err = time.Parse("2006-01-02", muAsOf)
		if err != nil {
			return fmt.Errorf("bad --asof date %q: want YYYY-MM-DD", muAsOf)
		}
	}
	window := muWindow
	if window == 0 {
		window = cfg.Window
	}

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

	rec := engine.Matchup(store, ix, px, muHome, muAway, asOf, window)
	report.PrintMatchupTable(os.Stdout, rec)
	return nil
}

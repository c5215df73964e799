package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/engine"
	"github.com/courtside/go-hoops-features/internal/model"
	"github.com/courtside/go-hoops-features/internal/storage"
)

// gameSpec is one game entry in the ingest JSON file.
type gameSpec struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"` // "YYYY-MM-DD" or RFC3339
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <games.json>",
	Short: "Ingest a JSON game log into the feature store",
	Long: `Reads a JSON array of completed games, validates the log, and stores it.
Re-ingesting the same file is idempotent.

Example:
  hoopsfeat ingest seasons/2024-25.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read game log: %w", err)
	}
	var specs []gameSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return fmt.Errorf("parse game log: %w", err)
	}

	games := make([]model.Game, 0, len(specs))
	for _, s := range specs {
		date, err := parseGameDate(s.Date)
		if err != nil {
			return fmt.Errorf("game %d: %w", s.ID, err)
		}
		games = append(games, model.Game{
			ID:         s.ID,
			Date:       date,
			HomeTeamID: s.HomeTeamID,
			AwayTeamID: s.AwayTeamID,
			HomeScore:  s.HomeScore,
			AwayScore:  s.AwayScore,
		})
	}

	// BuildStore validates every game and rejects duplicate ids before
	// anything touches the database.
	if _, err := engine.BuildStore(games); err != nil {
		return fmt.Errorf("validate game log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.InsertGames(games); err != nil {
		return fmt.Errorf("store games: %w", err)
	}

	total, err := db.CountGames()
	if err != nil {
		return fmt.Errorf("count games: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Ingested %d game(s); store now holds %d.\n", len(games), total)
	return nil
}

func parseGameDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

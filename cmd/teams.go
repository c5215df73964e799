package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-hoops-features/internal/report"
	"github.com/courtside/go-hoops-features/internal/storage"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams in the stored game log",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	teams, err := db.Teams()
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet.")
		return nil
	}
	report.PrintTeamsTable(os.Stdout, teams)
	return nil
}

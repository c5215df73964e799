// Package report renders tables for the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/courtside/go-hoops-features/internal/model"
)

const tableDateLayout = "2006-01-02"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintTeamsTable prints one row per team with game counts, win rate, and
// date coverage.
func PrintTeamsTable(w io.Writer, teams []model.TeamSummary) {
	table := newTable(w)
	table.Header("TEAM", "GAMES", "W", "L", "WIN%", "FIRST", "LAST")

	for _, t := range teams {
		table.Append(
			strconv.FormatInt(t.TeamID, 10),
			strconv.Itoa(t.Games),
			strconv.Itoa(t.Wins),
			strconv.Itoa(t.Games-t.Wins),
			fmt.Sprintf("%.1f%%", t.WinPct()*100),
			t.FirstGame.Format(tableDateLayout),
			t.LastGame.Format(tableDateLayout),
		)
	}
	table.Render()
}

// PrintMatchupTable prints an assembled feature row side by side for the two
// teams, one feature per line.
func PrintMatchupTable(w io.Writer, rec model.FeatureRecord) {
	fmt.Fprintf(w, "\nMatchup: team %d (home) vs team %d (away)  |  As of: %s\n\n",
		rec.Home.TeamID, rec.Away.TeamID, rec.Date.Format(tableDateLayout))

	table := newTable(w)
	table.Header("FEATURE", "HOME", "AWAY")

	rows := []struct {
		label      string
		home, away string
	}{
		{"GAMES (WINDOW)", strconv.Itoa(rec.Home.Form.GamesPlayed), strconv.Itoa(rec.Away.Form.GamesPlayed)},
		{"WIN%", pct(rec.Home.Form.WinPct), pct(rec.Away.Form.WinPct)},
		{"AVG SCORED", f1(rec.Home.Form.AvgScored), f1(rec.Away.Form.AvgScored)},
		{"AVG ALLOWED", f1(rec.Home.Form.AvgAllowed), f1(rec.Away.Form.AvgAllowed)},
		{"AVG DIFF", f1(rec.Home.Form.AvgDiff), f1(rec.Away.Form.AvgDiff)},
		{"STREAK", streak(rec.Home.Streak), streak(rec.Away.Streak)},
		{"REST DAYS", rest(rec.Home.RestDays), rest(rec.Away.RestDays)},
		{"BACK-TO-BACK", yesNo(rec.Home.BackToBack), yesNo(rec.Away.BackToBack)},
		{"HOME WIN%", pct(rec.Home.Split.HomeWinPct), pct(rec.Away.Split.HomeWinPct)},
		{"AWAY WIN%", pct(rec.Home.Split.AwayWinPct), pct(rec.Away.Split.AwayWinPct)},
	}
	for _, r := range rows {
		table.Append(r.label, r.home, r.away)
	}
	table.Render()

	if rec.H2H.Games > 0 {
		fmt.Fprintf(w, "\nHead-to-head (last %d): home side %d–%d (%.0f%%)\n",
			rec.H2H.Games, rec.H2H.WinsA, rec.H2H.WinsB, rec.H2H.WinPctA*100)
	} else {
		fmt.Fprintln(w, "\nHead-to-head: no prior meetings")
	}
}

// PrintFeatureSummary prints counts after an assembly run.
func PrintFeatureSummary(w io.Writer, total, skipped int, opts string) {
	fmt.Fprintf(w, "\nAssembled %d feature rows (%d skipped)  |  %s\n", total, skipped, opts)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func f1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func streak(s int) string {
	if s > 0 {
		return fmt.Sprintf("W%d", s)
	}
	if s < 0 {
		return fmt.Sprintf("L%d", -s)
	}
	return "—"
}

func rest(days int) string {
	if days == model.NoPriorGame {
		return "—"
	}
	return strconv.Itoa(days)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

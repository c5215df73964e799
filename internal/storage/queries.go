package storage

import (
	"fmt"
	"time"

	"github.com/courtside/go-hoops-features/internal/model"
)

// dateLayout keeps dates lexicographically sortable in SQLite.
const dateLayout = time.RFC3339

// InsertGames bulk-inserts games in a transaction. INSERT OR REPLACE keeps
// re-ingesting the same log idempotent.
func (db *DB) InsertGames(games []model.Game) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(id, game_date, home_team_id, away_team_id, home_score, away_score)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		_, err = stmt.Exec(g.ID, g.Date.UTC().Format(dateLayout), g.HomeTeamID, g.AwayTeamID, g.HomeScore, g.AwayScore)
		if err != nil {
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// LoadGames returns every stored game, oldest first (ties by id).
func (db *DB) LoadGames() ([]model.Game, error) {
	rows, err := db.conn.Query(`
		SELECT id, game_date, home_team_id, away_team_id, home_score, away_score
		FROM games ORDER BY game_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		var date string
		if err := rows.Scan(&g.ID, &date, &g.HomeTeamID, &g.AwayTeamID, &g.HomeScore, &g.AwayScore); err != nil {
			return nil, err
		}
		g.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("game %d: bad stored date %q: %w", g.ID, date, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// CountGames returns the number of stored games.
func (db *DB) CountGames() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games").Scan(&n)
	return n, err
}

// Teams aggregates per-team game counts, wins, and date coverage across the
// stored log, ordered by team id.
func (db *DB) Teams() ([]model.TeamSummary, error) {
	rows, err := db.conn.Query(`
		SELECT team_id,
		       COUNT(1)  AS games,
		       SUM(won)  AS wins,
		       MIN(game_date) AS first_game,
		       MAX(game_date) AS last_game
		FROM (
			SELECT home_team_id AS team_id, game_date,
			       CASE WHEN home_score > away_score THEN 1 ELSE 0 END AS won
			FROM games
			UNION ALL
			SELECT away_team_id AS team_id, game_date,
			       CASE WHEN away_score > home_score THEN 1 ELSE 0 END AS won
			FROM games
		)
		GROUP BY team_id ORDER BY team_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeamSummary
	for rows.Next() {
		var s model.TeamSummary
		var first, last string
		if err := rows.Scan(&s.TeamID, &s.Games, &s.Wins, &first, &last); err != nil {
			return nil, err
		}
		if s.FirstGame, err = time.Parse(dateLayout, first); err != nil {
			return nil, fmt.Errorf("team %d: bad first date %q: %w", s.TeamID, first, err)
		}
		if s.LastGame, err = time.Parse(dateLayout, last); err != nil {
			return nil, fmt.Errorf("team %d: bad last date %q: %w", s.TeamID, last, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// InsertFeatureRecords bulk-inserts assembled feature rows in a transaction.
func (db *DB) InsertFeatureRecords(records []model.FeatureRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO feature_records(
			game_id, game_date, home_team_id, away_team_id,
			home_win_pct, home_avg_points, home_avg_allowed, home_point_diff,
			away_win_pct, away_avg_points, away_avg_allowed, away_point_diff,
			h2h_games, home_h2h_win_pct,
			home_rest_days, away_rest_days, home_b2b, away_b2b,
			home_streak, away_streak,
			home_home_win_pct, away_away_win_pct,
			has_label, home_win, home_score, away_score
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.Exec(
			r.GameID, r.Date.UTC().Format(dateLayout), r.Home.TeamID, r.Away.TeamID,
			r.Home.Form.WinPct, r.Home.Form.AvgScored, r.Home.Form.AvgAllowed, r.Home.Form.AvgDiff,
			r.Away.Form.WinPct, r.Away.Form.AvgScored, r.Away.Form.AvgAllowed, r.Away.Form.AvgDiff,
			r.H2H.Games, r.H2H.WinPctA,
			r.Home.RestDays, r.Away.RestDays, boolInt(r.Home.BackToBack), boolInt(r.Away.BackToBack),
			r.Home.Streak, r.Away.Streak,
			r.Home.Split.HomeWinPct, r.Away.Split.AwayWinPct,
			boolInt(r.HasLabel), r.HomeWin, r.HomeScore, r.AwayScore,
		)
		if err != nil {
			return fmt.Errorf("insert feature record for game %d: %w", r.GameID, err)
		}
	}
	return tx.Commit()
}

// LoadFeatureRecords returns stored feature rows in chronological order.
// Only the flattened columns round-trip; form game counts and split game
// counts live in memory only and come back zero.
func (db *DB) LoadFeatureRecords() ([]model.FeatureRecord, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, game_date, home_team_id, away_team_id,
		       home_win_pct, home_avg_points, home_avg_allowed, home_point_diff,
		       away_win_pct, away_avg_points, away_avg_allowed, away_point_diff,
		       h2h_games, home_h2h_win_pct,
		       home_rest_days, away_rest_days, home_b2b, away_b2b,
		       home_streak, away_streak,
		       home_home_win_pct, away_away_win_pct,
		       has_label, home_win, home_score, away_score
		FROM feature_records ORDER BY game_date ASC, game_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FeatureRecord
	for rows.Next() {
		var r model.FeatureRecord
		var date string
		var homeB2B, awayB2B, hasLabel int
		if err := rows.Scan(
			&r.GameID, &date, &r.Home.TeamID, &r.Away.TeamID,
			&r.Home.Form.WinPct, &r.Home.Form.AvgScored, &r.Home.Form.AvgAllowed, &r.Home.Form.AvgDiff,
			&r.Away.Form.WinPct, &r.Away.Form.AvgScored, &r.Away.Form.AvgAllowed, &r.Away.Form.AvgDiff,
			&r.H2H.Games, &r.H2H.WinPctA,
			&r.Home.RestDays, &r.Away.RestDays, &homeB2B, &awayB2B,
			&r.Home.Streak, &r.Away.Streak,
			&r.Home.Split.HomeWinPct, &r.Away.Split.AwayWinPct,
			&hasLabel, &r.HomeWin, &r.HomeScore, &r.AwayScore,
		); err != nil {
			return nil, err
		}
		r.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("feature record %d: bad stored date %q: %w", r.GameID, date, err)
		}
		r.Home.BackToBack = homeB2B == 1
		r.Away.BackToBack = awayB2B == 1
		r.HasLabel = hasLabel == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// DropFeatureRecords clears the feature table, e.g. before a re-assembly
// with different options.
func (db *DB) DropFeatureRecords() error {
	_, err := db.conn.Exec("DELETE FROM feature_records")
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

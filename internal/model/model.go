package model

import (
	"fmt"
	"time"
)

// Game is one completed contest between two teams. IDs are externally
// assigned and unique across the log. HomeTeamID holds the "home" role;
// scores are final and non-negative.
type Game struct {
	ID         int64
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  int
	AwayScore  int
}

// Involves reports whether the team played in this game on either side.
func (g Game) Involves(team int64) bool {
	return g.HomeTeamID == team || g.AwayTeamID == team
}

// Opponent returns the other side's team id. Returns 0 if the team did not play.
func (g Game) Opponent(team int64) int64 {
	switch team {
	case g.HomeTeamID:
		return g.AwayTeamID
	case g.AwayTeamID:
		return g.HomeTeamID
	default:
		return 0
	}
}

// Scores returns (scored, allowed) from the team's perspective, attributed
// by the side the team actually played, not by home/away role.
func (g Game) Scores(team int64) (scored, allowed int) {
	if g.HomeTeamID == team {
		return g.HomeScore, g.AwayScore
	}
	return g.AwayScore, g.HomeScore
}

// WonBy reports whether the team scored strictly more than its opponent.
// A tie is not a win for either side.
func (g Game) WonBy(team int64) bool {
	scored, allowed := g.Scores(team)
	return scored > allowed
}

// HomeWin reports whether the home side won outright.
func (g Game) HomeWin() bool { return g.HomeScore > g.AwayScore }

// Validate checks the per-game invariants. Duplicate-id detection is the
// store's job since it needs the whole log.
func (g Game) Validate() error {
	if g.HomeTeamID == g.AwayTeamID {
		return &ValidationError{GameID: g.ID, Reason: "home and away team ids are identical"}
	}
	if g.HomeScore < 0 || g.AwayScore < 0 {
		return &ValidationError{GameID: g.ID, Reason: fmt.Sprintf("negative score %d-%d", g.HomeScore, g.AwayScore)}
	}
	if g.Date.IsZero() {
		return &ValidationError{GameID: g.ID, Reason: "zero date"}
	}
	return nil
}

// ValidationError rejects a whole game log at store build time.
type ValidationError struct {
	GameID int64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid game %d: %s", e.GameID, e.Reason)
}

// NoPriorGame is the rest-days sentinel for a team with no game before the
// cutoff. The value follows the convention of the upstream prediction stack.
const NoPriorGame = 999

// FormStats summarizes a team's trailing-window performance strictly before
// a cutoff. A zero-valued record with GamesPlayed == 0 is the normal cold
// start for a new team, not an error.
type FormStats struct {
	GamesPlayed int
	WinPct      float64
	AvgScored   float64
	AvgAllowed  float64
	AvgDiff     float64
}

// HeadToHeadStats is the shared history between two specific teams before a
// cutoff. "A" is the first team of the query (the home team during assembly).
type HeadToHeadStats struct {
	Games   int
	WinsA   int
	WinsB   int
	WinPctA float64
}

// HomeAwaySplit tracks win rate with the home role vs. without it, over the
// trailing window of each partition independently. An empty partition keeps
// a zero game count and a 0.0 win pct.
type HomeAwaySplit struct {
	HomeGames  int
	HomeWinPct float64
	AwayGames  int
	AwayWinPct float64
}

// TeamSnapshot is one team's half of a feature record: everything the engine
// knows about the team strictly before the cutoff.
type TeamSnapshot struct {
	TeamID     int64
	Form       FormStats
	Streak     int // +n consecutive wins, -n consecutive losses, 0 no history
	RestDays   int // NoPriorGame when no history
	BackToBack bool
	Split      HomeAwaySplit
}

// FeatureRecord is one feature vector attached to a game. Every contributing
// statistic is computed from games dated strictly before the game itself.
type FeatureRecord struct {
	GameID int64
	Date   time.Time

	Home TeamSnapshot
	Away TeamSnapshot
	H2H  HeadToHeadStats // A = home team

	// Realized outcome, present only when labels were requested.
	HasLabel  bool
	HomeWin   int
	HomeScore int
	AwayScore int
}

// RollingWindow is one trailing-mean window within a RollingRecord.
type RollingWindow struct {
	Window     int
	AvgScored  float64
	AvgAllowed float64
	AvgDiff    float64
}

// RollingRecord is the per-team feature variant: one row per (game, team)
// appearance with trailing means over several window sizes and a scoring
// consistency score in [0, 1]. History excludes the game the row is attached to.
type RollingRecord struct {
	GameID      int64
	TeamID      int64
	Date        time.Time
	Home        bool
	Windows     []RollingWindow
	Consistency float64
}

// TeamSummary is a lightweight per-team rollup for list commands.
type TeamSummary struct {
	TeamID    int64
	Games     int
	Wins      int
	FirstGame time.Time
	LastGame  time.Time
}

// WinPct is the team's overall win rate across stored games.
func (s TeamSummary) WinPct() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

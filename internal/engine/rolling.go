package engine

import (
	"math"

	"github.com/courtside/go-hoops-features/internal/model"
)

// DefaultWindows are the trailing-mean window sizes used when a caller
// supplies none. Exported so callers shaping output around the windows (CSV
// headers) resolve the same fallback.
var DefaultWindows = []int{5, 10, 20}

// RollingOptions controls the per-team rolling feature pass.
type RollingOptions struct {
	// Windows are the trailing-mean window sizes. Defaults to DefaultWindows.
	Windows []int

	// ConsistencyWindow sizes the scoring-consistency window. Defaults to 10.
	ConsistencyWindow int
}

func (o RollingOptions) withDefaults() RollingOptions {
	if len(o.Windows) == 0 {
		o.Windows = append([]int(nil), DefaultWindows...)
	}
	if o.ConsistencyWindow <= 0 {
		o.ConsistencyWindow = 10
	}
	return o
}

// Rolling emits one row per (game, team) appearance in chronological order,
// home side first within a game. Each row's trailing means cover the team's
// games strictly before the row's game, so the row never sees its own
// outcome. A team's first appearance has zero windows played and is still
// emitted; downstream filtering is the dataset builder's call.
func Rolling(store *EventStore, ix *ParticipantIndex, opts RollingOptions) []model.RollingRecord {
	opts = opts.withDefaults()

	teamCursors := make(map[int64]*cursor, len(ix.byTeam))
	for id, positions := range ix.byTeam {
		teamCursors[id] = &cursor{positions: positions}
	}

	records := make([]model.RollingRecord, 0, 2*store.Len())
	for pos := 0; pos < store.Len(); pos++ {
		g := store.At(pos)
		homePrior := teamCursors[g.HomeTeamID].prefix(store, g.Date)
		awayPrior := teamCursors[g.AwayTeamID].prefix(store, g.Date)
		records = append(records,
			rollingRow(store, g, g.HomeTeamID, true, homePrior, opts),
			rollingRow(store, g, g.AwayTeamID, false, awayPrior, opts),
		)
	}
	return records
}

func rollingRow(store *EventStore, g model.Game, team int64, home bool, prior []int, opts RollingOptions) model.RollingRecord {
	rec := model.RollingRecord{
		GameID:      g.ID,
		TeamID:      team,
		Date:        g.Date,
		Home:        home,
		Windows:     make([]model.RollingWindow, 0, len(opts.Windows)),
		Consistency: consistency(store, team, tail(prior, opts.ConsistencyWindow)),
	}
	for _, w := range opts.Windows {
		rec.Windows = append(rec.Windows, rollingWindow(store, team, tail(prior, w), w))
	}
	return rec
}

func rollingWindow(store *EventStore, team int64, positions []int, window int) model.RollingWindow {
	rw := model.RollingWindow{Window: window}
	if len(positions) == 0 {
		return rw
	}
	var scored, allowed int
	for _, pos := range positions {
		s, a := store.At(pos).Scores(team)
		scored += s
		allowed += a
	}
	n := float64(len(positions))
	rw.AvgScored = float64(scored) / n
	rw.AvgAllowed = float64(allowed) / n
	rw.AvgDiff = rw.AvgScored - rw.AvgAllowed
	return rw
}

// consistency scores how stable the team's recent scoring is:
// 1 - std/(mean+1), clipped to [0, 1]. Population standard deviation keeps a
// single-game history well defined (std 0, perfectly consistent). No history
// scores 0.
func consistency(store *EventStore, team int64, positions []int) float64 {
	if len(positions) == 0 {
		return 0
	}
	n := float64(len(positions))
	var sum float64
	for _, pos := range positions {
		s, _ := store.At(pos).Scores(team)
		sum += float64(s)
	}
	mean := sum / n

	var sq float64
	for _, pos := range positions {
		s, _ := store.At(pos).Scores(team)
		d := float64(s) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / n)

	score := 1 - std/(mean+1)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

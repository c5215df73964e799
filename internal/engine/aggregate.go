package engine

import (
	"time"

	"github.com/courtside/go-hoops-features/internal/model"
)

// The aggregators are pure point-in-time queries: an index, a team, a strict
// cutoff, and (where windowed) a trailing window size. Missing history is
// data, never an error: cold starts come back as zero records or the
// NoPriorGame sentinel.
//
// Tie policy: a tied game is not a win for either side. Ties stay in every
// games-played denominator and land on the loss side of a streak.

// Form summarizes the team's last window games before cutoff.
func Form(ix *ParticipantIndex, team int64, cutoff time.Time, window int) model.FormStats {
	return formFrom(ix.store, team, ix.EventsBefore(team, cutoff, window))
}

// Streak returns the signed length of the team's current run of identical
// outcomes ending just before cutoff: +n for wins, -n for losses, 0 with no
// history.
func Streak(ix *ParticipantIndex, team int64, cutoff time.Time) int {
	return streakFrom(ix.store, team, ix.EventsBefore(team, cutoff, 0))
}

// RestDays returns whole days between cutoff and the team's most recent
// prior game, or model.NoPriorGame when there is none.
func RestDays(ix *ParticipantIndex, team int64, cutoff time.Time) int {
	return restFrom(ix.store, cutoff, ix.EventsBefore(team, cutoff, 0))
}

// Split computes the team's home and away win rates over the trailing
// window games of each role partition independently.
func Split(ix *ParticipantIndex, team int64, cutoff time.Time, window int) model.HomeAwaySplit {
	return splitFrom(ix.store, team, ix.EventsBefore(team, cutoff, 0), window)
}

// HeadToHead summarizes the last window games between a and b before cutoff,
// from a's perspective.
func HeadToHead(px *PairIndex, a, b int64, cutoff time.Time, window int) model.HeadToHeadStats {
	return h2hFrom(px.store, a, px.EventsBefore(a, b, cutoff, window))
}

// formFrom computes FormStats over an already-cut window of positions.
func formFrom(store *EventStore, team int64, positions []int) model.FormStats {
	if len(positions) == 0 {
		return model.FormStats{}
	}
	var wins, scored, allowed int
	for _, pos := range positions {
		g := store.At(pos)
		s, a := g.Scores(team)
		scored += s
		allowed += a
		if g.WonBy(team) {
			wins++
		}
	}
	n := float64(len(positions))
	avgScored := float64(scored) / n
	avgAllowed := float64(allowed) / n
	return model.FormStats{
		GamesPlayed: len(positions),
		WinPct:      float64(wins) / n,
		AvgScored:   avgScored,
		AvgAllowed:  avgAllowed,
		AvgDiff:     avgScored - avgAllowed,
	}
}

// streakFrom walks the team's full prior history backwards, counting games
// that match the most recent outcome. Stops at the first outcome change.
func streakFrom(store *EventStore, team int64, prior []int) int {
	if len(prior) == 0 {
		return 0
	}
	first := store.At(prior[len(prior)-1]).WonBy(team)
	streak := 0
	for i := len(prior) - 1; i >= 0; i-- {
		if store.At(prior[i]).WonBy(team) != first {
			break
		}
		if first {
			streak++
		} else {
			streak--
		}
	}
	return streak
}

// restFrom returns whole days from the most recent prior game to cutoff.
func restFrom(store *EventStore, cutoff time.Time, prior []int) int {
	if len(prior) == 0 {
		return model.NoPriorGame
	}
	last := store.At(prior[len(prior)-1]).Date
	return int(cutoff.Sub(last).Hours() / 24)
}

// splitFrom partitions prior games by role, then windows each partition
// independently before computing its win rate.
func splitFrom(store *EventStore, team int64, prior []int, window int) model.HomeAwaySplit {
	var home, away []int
	for _, pos := range prior {
		if store.At(pos).HomeTeamID == team {
			home = append(home, pos)
		} else {
			away = append(away, pos)
		}
	}
	if window > 0 && len(home) > window {
		home = home[len(home)-window:]
	}
	if window > 0 && len(away) > window {
		away = away[len(away)-window:]
	}

	var split model.HomeAwaySplit
	split.HomeGames = len(home)
	split.AwayGames = len(away)
	if len(home) > 0 {
		wins := 0
		for _, pos := range home {
			if store.At(pos).WonBy(team) {
				wins++
			}
		}
		split.HomeWinPct = float64(wins) / float64(len(home))
	}
	if len(away) > 0 {
		wins := 0
		for _, pos := range away {
			if store.At(pos).WonBy(team) {
				wins++
			}
		}
		split.AwayWinPct = float64(wins) / float64(len(away))
	}
	return split
}

// h2hFrom computes head-to-head stats over an already-cut pair window, from
// team a's perspective.
func h2hFrom(store *EventStore, a int64, positions []int) model.HeadToHeadStats {
	if len(positions) == 0 {
		return model.HeadToHeadStats{}
	}
	winsA := 0
	for _, pos := range positions {
		if store.At(pos).WonBy(a) {
			winsA++
		}
	}
	return model.HeadToHeadStats{
		Games:   len(positions),
		WinsA:   winsA,
		WinsB:   len(positions) - winsA,
		WinPctA: float64(winsA) / float64(len(positions)),
	}
}

// tail returns the trailing window elements; window <= 0 means all.
func tail(positions []int, window int) []int {
	if window > 0 && len(positions) > window {
		return positions[len(positions)-window:]
	}
	return positions
}

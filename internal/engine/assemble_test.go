package engine

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/courtside/go-hoops-features/internal/model"
)

// randomLog generates a deterministic pseudo-random season: teams play each
// other on random days with random scores, several games per day so date
// ties occur.
func randomLog(seed int64, n int) []model.Game {
	rng := rand.New(rand.NewSource(seed))
	teams := []int64{teamX, teamY, teamZ, teamW, 5, 6}
	games := make([]model.Game, 0, n)
	for i := 0; i < n; i++ {
		home := teams[rng.Intn(len(teams))]
		away := teams[rng.Intn(len(teams))]
		for away == home {
			away = teams[rng.Intn(len(teams))]
		}
		games = append(games, game(
			int64(i+1),
			day(1+rng.Intn(n/3+1)),
			home, away,
			80+rng.Intn(50),
			80+rng.Intn(50),
		))
	}
	return games
}

// naiveSnapshot recomputes one team's snapshot by rescanning the whole log,
// the O(n^2) way. It is the oracle the indexed engine must agree with.
func naiveSnapshot(games []model.Game, team int64, cutoff time.Time, window int) model.TeamSnapshot {
	var prior []model.Game
	for _, g := range games {
		if g.Involves(team) && g.Date.Before(cutoff) {
			prior = append(prior, g)
		}
	}

	snap := model.TeamSnapshot{TeamID: team, RestDays: model.NoPriorGame}

	formGames := prior
	if len(formGames) > window {
		formGames = formGames[len(formGames)-window:]
	}
	if len(formGames) > 0 {
		var wins, scored, allowed int
		for _, g := range formGames {
			s, a := g.Scores(team)
			scored += s
			allowed += a
			if g.WonBy(team) {
				wins++
			}
		}
		n := float64(len(formGames))
		snap.Form = model.FormStats{
			GamesPlayed: len(formGames),
			WinPct:      float64(wins) / n,
			AvgScored:   float64(scored) / n,
			AvgAllowed:  float64(allowed) / n,
			AvgDiff:     float64(scored)/n - float64(allowed)/n,
		}
	}

	if len(prior) > 0 {
		last := prior[len(prior)-1]
		snap.RestDays = int(cutoff.Sub(last.Date).Hours() / 24)
		snap.BackToBack = snap.RestDays == 1

		first := last.WonBy(team)
		for i := len(prior) - 1; i >= 0; i-- {
			if prior[i].WonBy(team) != first {
				break
			}
			if first {
				snap.Streak++
			} else {
				snap.Streak--
			}
		}
	}

	var home, away []model.Game
	for _, g := range prior {
		if g.HomeTeamID == team {
			home = append(home, g)
		} else {
			away = append(away, g)
		}
	}
	if len(home) > window {
		home = home[len(home)-window:]
	}
	if len(away) > window {
		away = away[len(away)-window:]
	}
	snap.Split.HomeGames = len(home)
	snap.Split.AwayGames = len(away)
	if len(home) > 0 {
		wins := 0
		for _, g := range home {
			if g.WonBy(team) {
				wins++
			}
		}
		snap.Split.HomeWinPct = float64(wins) / float64(len(home))
	}
	if len(away) > 0 {
		wins := 0
		for _, g := range away {
			if g.WonBy(team) {
				wins++
			}
		}
		snap.Split.AwayWinPct = float64(wins) / float64(len(away))
	}
	return snap
}

func TestAssemble_AgreesWithNaiveOracle(t *testing.T) {
	games := randomLog(42, 120)
	store, ix, px := buildAll(t, games)
	sorted := store.Games()

	records := Assemble(store, ix, px, Options{Window: 10, IncludeLabels: true})
	if len(records) != store.Len() {
		t.Fatalf("MinHistory=0 must keep every game: want %d, got %d", store.Len(), len(records))
	}

	for i, rec := range records {
		g := sorted[i]
		if rec.GameID != g.ID {
			t.Fatalf("row %d: output order diverged from chronological input order", i)
		}
		wantHome := naiveSnapshot(sorted, g.HomeTeamID, g.Date, 10)
		if !reflect.DeepEqual(rec.Home, wantHome) {
			t.Fatalf("game %d home snapshot:\n got %+v\nwant %+v", g.ID, rec.Home, wantHome)
		}
		wantAway := naiveSnapshot(sorted, g.AwayTeamID, g.Date, 10)
		if !reflect.DeepEqual(rec.Away, wantAway) {
			t.Fatalf("game %d away snapshot:\n got %+v\nwant %+v", g.ID, rec.Away, wantAway)
		}
	}
}

func TestAssemble_NoLeakage(t *testing.T) {
	// Poison the chronologically last game with an absurd score. Every
	// unlabeled record — including the poisoned game's own row, whose cutoff
	// is strictly before itself — must be unchanged.
	games := randomLog(7, 80)
	store, ix, px := buildAll(t, games)
	baseline := Assemble(store, ix, px, Options{Window: 10})

	poisoned := store.Games()
	poisoned[len(poisoned)-1].HomeScore = 10000

	store2, ix2, px2 := buildAll(t, poisoned)
	altered := Assemble(store2, ix2, px2, Options{Window: 10})

	if !reflect.DeepEqual(baseline, altered) {
		t.Fatal("a future score changed an earlier feature row: look-ahead leakage")
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	games := randomLog(99, 60)
	store1, ix1, px1 := buildAll(t, games)
	store2, ix2, px2 := buildAll(t, games)

	a := Assemble(store1, ix1, px1, Options{Window: 10, MinHistory: 2, IncludeLabels: true})
	b := Assemble(store2, ix2, px2, Options{Window: 10, MinHistory: 2, IncludeLabels: true})
	if !reflect.DeepEqual(a, b) {
		t.Error("rebuilding indices changed the feature output")
	}
}

func TestAssemble_MinHistorySkipsColdStarts(t *testing.T) {
	games := threeGameLog()
	store, ix, px := buildAll(t, games)

	records := Assemble(store, ix, px, Options{Window: 10, MinHistory: 2})
	if len(records) != 1 {
		t.Fatalf("want only the day-6 game, got %d records", len(records))
	}
	if records[0].GameID != 3 {
		t.Errorf("want game 3, got %d", records[0].GameID)
	}
}

func TestAssemble_Labels(t *testing.T) {
	store, ix, px := buildAll(t, threeGameLog())

	labeled := Assemble(store, ix, px, Options{Window: 10, IncludeLabels: true})
	for _, rec := range labeled {
		if !rec.HasLabel {
			t.Fatalf("game %d: missing label", rec.GameID)
		}
	}
	// Game 2: Y hosted and beat X.
	if labeled[1].HomeWin != 1 || labeled[1].HomeScore != 95 || labeled[1].AwayScore != 92 {
		t.Errorf("game 2 label: want home win 95-92, got %+v", labeled[1])
	}

	unlabeled := Assemble(store, ix, px, Options{Window: 10})
	for _, rec := range unlabeled {
		if rec.HasLabel || rec.HomeWin != 0 || rec.HomeScore != 0 {
			t.Fatalf("game %d: label fields set without IncludeLabels", rec.GameID)
		}
	}
}

func TestAssemble_ParallelMatchesSequential(t *testing.T) {
	games := randomLog(5, 150)
	store, ix, px := buildAll(t, games)

	seq := Assemble(store, ix, px, Options{Window: 8, MinHistory: 3, IncludeLabels: true})
	par := Assemble(store, ix, px, Options{Window: 8, MinHistory: 3, IncludeLabels: true, Workers: 4})
	if !reflect.DeepEqual(seq, par) {
		t.Error("parallel assembly diverged from sequential output")
	}
}

func TestMatchup_MatchesAssembledRow(t *testing.T) {
	games := randomLog(11, 100)
	store, ix, px := buildAll(t, games)

	records := Assemble(store, ix, px, Options{Window: 10})
	target := records[len(records)-1]

	live := Matchup(store, ix, px, target.Home.TeamID, target.Away.TeamID, target.Date, 10)
	if live.HasLabel {
		t.Error("live matchup must not carry a label")
	}
	if !reflect.DeepEqual(live.Home, target.Home) || !reflect.DeepEqual(live.Away, target.Away) || live.H2H != target.H2H {
		t.Error("live matchup diverged from the assembler's row for the same cutoff")
	}
}

func TestMatchup_UnknownTeamsColdStart(t *testing.T) {
	store, ix, px := buildAll(t, threeGameLog())

	rec := Matchup(store, ix, px, 777, 888, day(10), 10)
	if rec.Home.Form.GamesPlayed != 0 || rec.Home.RestDays != model.NoPriorGame {
		t.Errorf("unknown home team: want cold start, got %+v", rec.Home)
	}
	if rec.H2H.Games != 0 {
		t.Errorf("unknown pair: want 0 games, got %d", rec.H2H.Games)
	}
}

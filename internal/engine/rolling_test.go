package engine

import (
	"testing"

	"github.com/courtside/go-hoops-features/internal/model"
)

func TestRolling_TrailingMeansExcludeOwnGame(t *testing.T) {
	// X scores 100, 90, 110 across three games.
	games := []model.Game{
		game(1, day(1), teamX, teamY, 100, 95),
		game(2, day(3), teamX, teamZ, 90, 80),
		game(3, day(6), teamX, teamY, 110, 100),
	}
	store, ix, _ := buildAll(t, games)

	records := Rolling(store, ix, RollingOptions{Windows: []int{2, 5}})
	if len(records) != 2*store.Len() {
		t.Fatalf("want %d rows, got %d", 2*store.Len(), len(records))
	}

	// Rows come in (home, away) pairs per game; X is home in all three.
	first := records[0]
	if first.TeamID != teamX || !first.Home {
		t.Fatalf("row 0: want home row for team X, got %+v", first)
	}
	for _, w := range first.Windows {
		if w.AvgScored != 0 || w.AvgAllowed != 0 {
			t.Errorf("first appearance window %d: want empty means, got %+v", w.Window, w)
		}
	}

	third := records[4] // X's row for game 3
	if third.GameID != 3 || third.TeamID != teamX {
		t.Fatalf("row 4: want (game 3, team X), got (game %d, team %d)", third.GameID, third.TeamID)
	}
	w2 := third.Windows[0]
	if w2.Window != 2 {
		t.Fatalf("want window 2 first, got %d", w2.Window)
	}
	// Trailing two games before game 3: scored (100+90)/2, allowed (95+80)/2.
	if !almostEqual(w2.AvgScored, 95) || !almostEqual(w2.AvgAllowed, 87.5) {
		t.Errorf("window 2: want scored 95 / allowed 87.5, got %+v", w2)
	}
	if !almostEqual(w2.AvgDiff, 7.5) {
		t.Errorf("window 2 diff: want 7.5, got %f", w2.AvgDiff)
	}
}

func TestRolling_WindowSaturation(t *testing.T) {
	games := make([]model.Game, 0, 4)
	for i := 1; i <= 4; i++ {
		games = append(games, game(int64(i), day(i), teamX, teamY, 100, 90))
	}
	store, ix, _ := buildAll(t, games)

	records := Rolling(store, ix, RollingOptions{Windows: []int{2}})
	// X's row for game 4: only the trailing 2 of 3 prior games count.
	lastHome := records[6]
	if lastHome.GameID != 4 || lastHome.TeamID != teamX {
		t.Fatalf("row 6: want (game 4, team X), got (game %d, team %d)", lastHome.GameID, lastHome.TeamID)
	}
	if !almostEqual(lastHome.Windows[0].AvgScored, 100) {
		t.Errorf("AvgScored: want 100, got %f", lastHome.Windows[0].AvgScored)
	}
}

func TestRolling_ConsistencyBounds(t *testing.T) {
	// Wildly varying scores for X, flat scores for Y's opponents view.
	games := []model.Game{
		game(1, day(1), teamX, teamY, 150, 100),
		game(2, day(2), teamX, teamZ, 20, 100),
		game(3, day(3), teamX, teamW, 160, 100),
		game(4, day(4), teamX, teamY, 10, 100),
		game(5, day(5), teamX, teamZ, 100, 100),
	}
	store, ix, _ := buildAll(t, games)

	records := Rolling(store, ix, RollingOptions{})
	for _, rec := range records {
		if rec.Consistency < 0 || rec.Consistency > 1 {
			t.Fatalf("consistency out of [0,1]: %f (game %d team %d)", rec.Consistency, rec.GameID, rec.TeamID)
		}
	}

	// No history scores 0; a single steady game scores high.
	if records[0].Consistency != 0 {
		t.Errorf("first appearance: want consistency 0, got %f", records[0].Consistency)
	}
	// X's row for game 2: one prior game, population std 0 → score clipped near 1.
	xSecond := records[2]
	if xSecond.TeamID != teamX || xSecond.GameID != 2 {
		t.Fatalf("row 2: want (game 2, team X), got (game %d, team %d)", xSecond.GameID, xSecond.TeamID)
	}
	if !almostEqual(xSecond.Consistency, 1) {
		t.Errorf("single-game history: want consistency 1, got %f", xSecond.Consistency)
	}
}

func TestRolling_DefaultWindows(t *testing.T) {
	store, ix, _ := buildAll(t, threeGameLog())

	// Empty options must produce exactly the exported default window set, so
	// callers shaping output around DefaultWindows stay in sync with the rows.
	records := Rolling(store, ix, RollingOptions{})
	if len(records[0].Windows) != len(DefaultWindows) {
		t.Fatalf("want %d windows, got %d", len(DefaultWindows), len(records[0].Windows))
	}
	for i, w := range records[0].Windows {
		if w.Window != DefaultWindows[i] {
			t.Errorf("default window %d: want %d, got %d", i, DefaultWindows[i], w.Window)
		}
	}
}

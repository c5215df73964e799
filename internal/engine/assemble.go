package engine

import (
	"sync"
	"time"

	"github.com/courtside/go-hoops-features/internal/model"
)

// Options controls feature assembly.
type Options struct {
	// Window is the trailing game count for form, head-to-head, and
	// home/away splits. Defaults to 10.
	Window int

	// MinHistory skips games where either team has fewer prior games.
	// Cold-start rows are noise for training, not data defects.
	MinHistory int

	// IncludeLabels appends the realized outcome to each record.
	IncludeLabels bool

	// Workers > 1 assembles rows concurrently against the frozen indices.
	// Output order is identical to the sequential path.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = 10
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// Assemble produces one FeatureRecord per eligible game, in chronological
// order. Each row's cutoff is the game's own date, so no statistic is ever
// influenced by the game itself or anything after it.
//
// The sequential pass exploits the ascending iteration order: per-team and
// per-pair cursors advance monotonically, giving amortized O(1) history
// lookups per row instead of a binary search each.
func Assemble(store *EventStore, ix *ParticipantIndex, px *PairIndex, opts Options) []model.FeatureRecord {
	opts = opts.withDefaults()
	if opts.Workers > 1 {
		return assembleParallel(store, ix, px, opts)
	}

	teamCursors := make(map[int64]*cursor, len(ix.byTeam))
	for id, positions := range ix.byTeam {
		teamCursors[id] = &cursor{positions: positions}
	}
	pairCursors := make(map[pairKey]*cursor, len(px.byPair))
	for key, positions := range px.byPair {
		pairCursors[key] = &cursor{positions: positions}
	}

	records := make([]model.FeatureRecord, 0, store.Len())
	for pos := 0; pos < store.Len(); pos++ {
		g := store.At(pos)
		homePrior := teamCursors[g.HomeTeamID].prefix(store, g.Date)
		awayPrior := teamCursors[g.AwayTeamID].prefix(store, g.Date)
		if len(homePrior) < opts.MinHistory || len(awayPrior) < opts.MinHistory {
			continue
		}
		pairPrior := pairCursors[makePairKey(g.HomeTeamID, g.AwayTeamID)].prefix(store, g.Date)
		records = append(records, buildRecord(store, g, homePrior, awayPrior, pairPrior, opts))
	}
	return records
}

// assembleParallel fans game positions out to workers. Workers only read the
// frozen indices; cutoffs arrive out of order per worker, so each row falls
// back to binary-search lookups. Rows land in a position-indexed slice,
// which preserves chronological output order for free.
func assembleParallel(store *EventStore, ix *ParticipantIndex, px *PairIndex, opts Options) []model.FeatureRecord {
	type slot struct {
		rec model.FeatureRecord
		ok  bool
	}
	slots := make([]slot, store.Len())

	var wg sync.WaitGroup
	positions := make(chan int)
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range positions {
				g := store.At(pos)
				homePrior := ix.EventsBefore(g.HomeTeamID, g.Date, 0)
				awayPrior := ix.EventsBefore(g.AwayTeamID, g.Date, 0)
				if len(homePrior) < opts.MinHistory || len(awayPrior) < opts.MinHistory {
					continue
				}
				pairPrior := px.EventsBefore(g.HomeTeamID, g.AwayTeamID, g.Date, 0)
				slots[pos] = slot{rec: buildRecord(store, g, homePrior, awayPrior, pairPrior, opts), ok: true}
			}
		}()
	}
	for pos := 0; pos < store.Len(); pos++ {
		positions <- pos
	}
	close(positions)
	wg.Wait()

	records := make([]model.FeatureRecord, 0, store.Len())
	for _, s := range slots {
		if s.ok {
			records = append(records, s.rec)
		}
	}
	return records
}

// buildRecord computes one row from pre-cut prior-history slices. This is
// the single per-row code path shared by both assembly modes and the live
// Matchup query.
func buildRecord(store *EventStore, g model.Game, homePrior, awayPrior, pairPrior []int, opts Options) model.FeatureRecord {
	rec := model.FeatureRecord{
		GameID: g.ID,
		Date:   g.Date,
		Home:   snapshot(store, g.HomeTeamID, g.Date, homePrior, opts.Window),
		Away:   snapshot(store, g.AwayTeamID, g.Date, awayPrior, opts.Window),
		H2H:    h2hFrom(store, g.HomeTeamID, tail(pairPrior, opts.Window)),
	}
	if opts.IncludeLabels {
		rec.HasLabel = true
		if g.HomeWin() {
			rec.HomeWin = 1
		}
		rec.HomeScore = g.HomeScore
		rec.AwayScore = g.AwayScore
	}
	return rec
}

// snapshot computes one team's half of a record from its full prior history.
func snapshot(store *EventStore, team int64, cutoff time.Time, prior []int, window int) model.TeamSnapshot {
	rest := restFrom(store, cutoff, prior)
	return model.TeamSnapshot{
		TeamID:     team,
		Form:       formFrom(store, team, tail(prior, window)),
		Streak:     streakFrom(store, team, prior),
		RestDays:   rest,
		BackToBack: rest == 1,
		Split:      splitFrom(store, team, prior, window),
	}
}

// Matchup computes a single unlabeled feature record for a hypothetical
// game between home and away as of now, using the exact per-row code path
// of the assembler. GameID is left zero; the caller owns identification.
func Matchup(store *EventStore, ix *ParticipantIndex, px *PairIndex, home, away int64, now time.Time, window int) model.FeatureRecord {
	if window <= 0 {
		window = 10
	}
	homePrior := ix.EventsBefore(home, now, 0)
	awayPrior := ix.EventsBefore(away, now, 0)
	pairPrior := px.EventsBefore(home, away, now, 0)
	g := model.Game{Date: now, HomeTeamID: home, AwayTeamID: away}
	return buildRecord(store, g, homePrior, awayPrior, pairPrior, Options{Window: window})
}

package engine

import (
	"sort"
	"time"
)

// ParticipantIndex maps each team to the ascending store positions of the
// games it played. Built in one pass over the already-sorted store, so each
// per-team sequence is chronological by construction.
type ParticipantIndex struct {
	store  *EventStore
	byTeam map[int64][]int
}

// BuildParticipantIndex groups store positions by team. O(n) over a sorted store.
func BuildParticipantIndex(store *EventStore) *ParticipantIndex {
	byTeam := make(map[int64][]int)
	for pos := 0; pos < store.Len(); pos++ {
		g := store.At(pos)
		byTeam[g.HomeTeamID] = append(byTeam[g.HomeTeamID], pos)
		byTeam[g.AwayTeamID] = append(byTeam[g.AwayTeamID], pos)
	}
	return &ParticipantIndex{store: store, byTeam: byTeam}
}

// Store returns the event store this index was built from.
func (ix *ParticipantIndex) Store() *EventStore { return ix.store }

// Teams returns all known team ids in ascending order.
func (ix *ParticipantIndex) Teams() []int64 {
	out := make([]int64, 0, len(ix.byTeam))
	for id := range ix.byTeam {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EventsBefore returns up to the last max store positions of the team's
// games dated strictly before cutoff, oldest first. max <= 0 means no limit.
// An unknown team yields an empty result, not an error. The returned slice
// is a read-only view into the index.
func (ix *ParticipantIndex) EventsBefore(team int64, cutoff time.Time, max int) []int {
	return cutBefore(ix.store, ix.byTeam[team], cutoff, max)
}

// pairKey identifies an unordered team pair.
type pairKey struct{ lo, hi int64 }

func makePairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// PairIndex maps each unordered team pair to the ascending store positions
// of the games between exactly that pair. Every game lands in exactly one
// bucket, and each bucket is a subsequence of both teams' individual
// sequences.
type PairIndex struct {
	store  *EventStore
	byPair map[pairKey][]int
}

// BuildPairIndex buckets every game of the participant index's store by its
// team pair. O(n) total.
func BuildPairIndex(ix *ParticipantIndex) *PairIndex {
	store := ix.store
	byPair := make(map[pairKey][]int)
	for pos := 0; pos < store.Len(); pos++ {
		g := store.At(pos)
		key := makePairKey(g.HomeTeamID, g.AwayTeamID)
		byPair[key] = append(byPair[key], pos)
	}
	return &PairIndex{store: store, byPair: byPair}
}

// EventsBefore returns up to the last max games between a and b dated
// strictly before cutoff, oldest first. Teams with no shared history yield
// an empty result.
func (px *PairIndex) EventsBefore(a, b int64, cutoff time.Time, max int) []int {
	return cutBefore(px.store, px.byPair[makePairKey(a, b)], cutoff, max)
}

// cutBefore returns the trailing max positions with a date strictly before
// cutoff. positions must be ascending by store order, which keeps them
// ascending by date, so the boundary is found by binary search in O(log k).
func cutBefore(store *EventStore, positions []int, cutoff time.Time, max int) []int {
	n := sort.Search(len(positions), func(i int) bool {
		return !store.At(positions[i]).Date.Before(cutoff)
	})
	prior := positions[:n]
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	return prior
}

// cursor advances monotonically through one ascending position sequence as
// the assembler's cutoffs advance. prefix is valid only while cutoffs are
// fed in non-decreasing order; out-of-order callers must use EventsBefore.
type cursor struct {
	positions []int
	next      int
}

// prefix returns all positions dated strictly before cutoff.
func (c *cursor) prefix(store *EventStore, cutoff time.Time) []int {
	for c.next < len(c.positions) && store.At(c.positions[c.next]).Date.Before(cutoff) {
		c.next++
	}
	return c.positions[:c.next]
}

// Package engine computes leak-free feature vectors from a chronological
// game log. It builds immutable per-team and per-pair indices once, then
// answers point-in-time queries against them; nothing mutates after
// BuildStore and the index constructors return, so concurrent readers need
// no locking.
package engine

import (
	"fmt"
	"sort"

	"github.com/courtside/go-hoops-features/internal/model"
)

// EventStore holds the game log sorted ascending by date, ties broken by
// game id. Positions are stable zero-based references used by the indices.
type EventStore struct {
	games []model.Game
}

// BuildStore validates and sorts a game log. The input slice is not
// modified. Any invariant violation (identical team ids, negative score,
// zero date, duplicate game id) rejects the whole log with a
// *model.ValidationError.
func BuildStore(games []model.Game) (*EventStore, error) {
	sorted := make([]model.Game, len(games))
	copy(sorted, games)

	seen := make(map[int64]struct{}, len(sorted))
	for _, g := range sorted {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("build store: %w", err)
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("build store: %w", &model.ValidationError{GameID: g.ID, Reason: "duplicate game id"})
		}
		seen[g.ID] = struct{}{}
	}

	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return &EventStore{games: sorted}, nil
}

// Len returns the number of games in the store.
func (s *EventStore) Len() int { return len(s.games) }

// At returns the game at a stable zero-based position.
func (s *EventStore) At(pos int) model.Game { return s.games[pos] }

// Games returns a fresh copy of the sorted log, oldest first.
func (s *EventStore) Games() []model.Game {
	out := make([]model.Game, len(s.games))
	copy(out, s.games)
	return out
}

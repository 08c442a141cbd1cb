package ingest

import (
	"context"
	"errors"
	"fmt"

	"popularvideogames/backend/internal/store"
)

// ErrAmbiguousGame means storage holds more than one game with the same
// title and summary, which the schema is supposed to prevent.
var ErrAmbiguousGame = errors.New("more than one stored game matches title and summary")

// TitleLookup finds stored games by exact title.
type TitleLookup interface {
	GamesByTitle(ctx context.Context, title string) ([]store.Candidate, error)
}

// Resolver decides whether a record re-lists a game that is already stored.
// Titles alone collide across distinct games and editions, so a duplicate
// must also carry a byte-identical summary.
type Resolver struct {
	lookup TitleLookup
}

func NewResolver(lookup TitleLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve returns the id of the stored game with this title and summary.
// found is false when the record describes a new game.
func (r *Resolver) Resolve(ctx context.Context, title, summary string) (gameID int64, found bool, err error) {
	candidates, err := r.lookup.GamesByTitle(ctx, title)
	if err != nil {
		return 0, false, fmt.Errorf("look up title %q: %w", title, err)
	}
	for _, c := range candidates {
		// Collations may fold case; only exact matches count.
		if c.Title != title || c.Summary != summary {
			continue
		}
		if found {
			return 0, false, fmt.Errorf("%w: %q (games %d and %d)", ErrAmbiguousGame, title, gameID, c.GameID)
		}
		gameID, found = c.GameID, true
	}
	return gameID, found, nil
}

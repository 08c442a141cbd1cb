package ingest

import (
	"context"

	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/store"
)

// Store is the storage boundary used by one ingestion pass. Insert and
// Relate methods return store.ErrAlreadyExists on unique key collisions.
type Store interface {
	TitleLookup
	Titles(ctx context.Context) ([]string, error)
	InsertGame(ctx context.Context, game *models.Game) error
	InsertDeveloper(ctx context.Context, name string) error
	InsertGenre(ctx context.Context, name string) error
	RelateDeveloper(ctx context.Context, developer string, gameID int64) error
	RelateGenre(ctx context.Context, gameID int64, genre string) error
	InsertReview(ctx context.Context, content string, gameID int64) error
	RecordRun(ctx context.Context, run *models.IngestionRun) error
}

// TxRunner runs fn in a transaction: commit when fn returns nil, rollback
// otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type gormRunner struct {
	s *store.GormStore
}

// GormRunner adapts a GormStore to TxRunner.
func GormRunner(s *store.GormStore) TxRunner {
	return gormRunner{s: s}
}

func (g gormRunner) InTx(ctx context.Context, fn func(tx Store) error) error {
	return g.s.InTx(ctx, func(tx *store.GormStore) error {
		return fn(tx)
	})
}

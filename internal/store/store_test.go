package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popularvideogames/backend/internal/models"
	"popularvideogames/backend/internal/testutil"
)

func TestInsertIgnoreReportsAlreadyExists(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	require.NoError(t, s.InsertGame(ctx, &models.Game{GameID: 1, Title: "Hades", Summary: "rogue-like"}))
	require.NoError(t, s.InsertDeveloper(ctx, "Supergiant Games"))
	require.NoError(t, s.InsertGenre(ctx, "RPG"))
	require.NoError(t, s.RelateDeveloper(ctx, "Supergiant Games", 1))
	require.NoError(t, s.RelateGenre(ctx, 1, "RPG"))
	require.NoError(t, s.InsertReview(ctx, "great", 1))

	assert.ErrorIs(t, s.InsertGame(ctx, &models.Game{GameID: 1, Title: "Other", Summary: "x"}), ErrAlreadyExists)
	assert.ErrorIs(t, s.InsertGame(ctx, &models.Game{GameID: 2, Title: "Hades", Summary: "rogue-like"}), ErrAlreadyExists)
	assert.ErrorIs(t, s.InsertDeveloper(ctx, "Supergiant Games"), ErrAlreadyExists)
	assert.ErrorIs(t, s.InsertGenre(ctx, "RPG"), ErrAlreadyExists)
	assert.ErrorIs(t, s.RelateDeveloper(ctx, "Supergiant Games", 1), ErrAlreadyExists)
	assert.ErrorIs(t, s.RelateGenre(ctx, 1, "RPG"), ErrAlreadyExists)
	assert.ErrorIs(t, s.InsertReview(ctx, "great", 1), ErrAlreadyExists)

	// Same content on a different game is a different review.
	require.NoError(t, s.InsertGame(ctx, &models.Game{GameID: 2, Title: "Hades", Summary: "sequel"}))
	require.NoError(t, s.InsertReview(ctx, "great", 2))

	assert.Equal(t, int64(2), testutil.Count(t, db, &models.Game{}))
	assert.Equal(t, int64(2), testutil.Count(t, db, &models.Review{}))
}

func TestRelationRequiresExistingRows(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	err := s.RelateDeveloper(ctx, "Nobody", 99)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAlreadyExists), "foreign key failure must not look like a duplicate: %v", err)
}

func TestGamesByTitleOrdered(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedGame(t, db, 30, "Remake", "second")
	testutil.SeedGame(t, db, 10, "Remake", "first")
	testutil.SeedGame(t, db, 20, "Other", "first")

	got, err := s.GamesByTitle(ctx, "Remake")
	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{GameID: 10, Title: "Remake", Summary: "first"},
		{GameID: 30, Title: "Remake", Summary: "second"},
	}, got)

	titles, err := s.Titles(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Remake", "Other"}, titles)
}

func TestInTxRollsBack(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx *GormStore) error {
		require.NoError(t, tx.InsertGame(ctx, &models.Game{GameID: 1, Title: "Hades", Summary: "s"}))
		require.NoError(t, tx.InsertReview(ctx, "r", 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, testutil.Count(t, db, &models.Game{}))
	assert.Zero(t, testutil.Count(t, db, &models.Review{}))

	require.NoError(t, s.InTx(ctx, func(tx *GormStore) error {
		return tx.InsertGame(ctx, &models.Game{GameID: 1, Title: "Hades", Summary: "s"})
	}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Game{}))
}

func TestDeletingGameCascades(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	require.NoError(t, s.InsertGame(ctx, &models.Game{GameID: 1, Title: "Hades", Summary: "s"}))
	require.NoError(t, s.InsertDeveloper(ctx, "Supergiant Games"))
	require.NoError(t, s.RelateDeveloper(ctx, "Supergiant Games", 1))
	require.NoError(t, s.InsertGenre(ctx, "RPG"))
	require.NoError(t, s.RelateGenre(ctx, 1, "RPG"))
	require.NoError(t, s.InsertReview(ctx, "r", 1))

	require.NoError(t, db.Delete(&models.Game{}, 1).Error)

	assert.Zero(t, testutil.Count(t, db, &models.Review{}))
	assert.Zero(t, testutil.Count(t, db, &models.DevelopedBy{}))
	assert.Zero(t, testutil.Count(t, db, &models.GenreOf{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Developer{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Genre{}))
}

func TestTitlesAndNamesAreCaseSensitive(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	require.NoError(t, s.InsertGame(ctx, &models.Game{GameID: 1, Title: "Remake", Summary: "s"}))
	require.NoError(t, s.InsertGame(ctx, &models.Game{GameID: 2, Title: "remake", Summary: "s"}))
	require.NoError(t, s.InsertDeveloper(ctx, "id Software"))
	require.NoError(t, s.InsertDeveloper(ctx, "ID Software"))

	games, err := s.GamesByTitle(ctx, "remake")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(2), games[0].GameID)
}

func TestChildRowsNeedAStoredGame(t *testing.T) {
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t))
	ctx := context.Background()

	require.NoError(t, s.InsertGenre(ctx, "RPG"))
	err := s.RelateGenre(ctx, 42, "RPG")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyExists)

	err = s.InsertReview(ctx, "orphan", 42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

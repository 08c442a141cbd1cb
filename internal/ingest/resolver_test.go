package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popularvideogames/backend/internal/store"
)

type lookupFunc func(ctx context.Context, title string) ([]store.Candidate, error)

func (f lookupFunc) GamesByTitle(ctx context.Context, title string) ([]store.Candidate, error) {
	return f(ctx, title)
}

func staticLookup(candidates ...store.Candidate) TitleLookup {
	return lookupFunc(func(_ context.Context, title string) ([]store.Candidate, error) {
		return candidates, nil
	})
}

func TestResolverMatchesTitleAndSummary(t *testing.T) {
	r := NewResolver(staticLookup(
		store.Candidate{GameID: 1, Title: "Remake", Summary: "the original"},
		store.Candidate{GameID: 2, Title: "Remake", Summary: "the remake"},
	))

	id, found, err := r.Resolve(context.Background(), "Remake", "the remake")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(2), id)
}

func TestResolverNoMatch(t *testing.T) {
	r := NewResolver(staticLookup(
		store.Candidate{GameID: 1, Title: "Remake", Summary: "the original"},
		// Case-folding collations can return near titles.
		store.Candidate{GameID: 3, Title: "REMAKE", Summary: "the remake"},
	))

	for _, summary := range []string{"the remake", "the original ", "The original"} {
		_, found, err := r.Resolve(context.Background(), "Remake", summary)
		require.NoError(t, err)
		assert.False(t, found, summary)
	}

	_, found, err := NewResolver(staticLookup()).Resolve(context.Background(), "Remake", "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolverAmbiguous(t *testing.T) {
	r := NewResolver(staticLookup(
		store.Candidate{GameID: 1, Title: "Hades", Summary: "s"},
		store.Candidate{GameID: 2, Title: "Hades", Summary: "s"},
	))
	_, _, err := r.Resolve(context.Background(), "Hades", "s")
	assert.ErrorIs(t, err, ErrAmbiguousGame)
}

func TestResolverLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewResolver(lookupFunc(func(context.Context, string) ([]store.Candidate, error) {
		return nil, boom
	}))
	_, _, err := r.Resolve(context.Background(), "Hades", "s")
	assert.ErrorIs(t, err, boom)
}

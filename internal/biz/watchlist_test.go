package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistGeneratorInvariants(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{
		activeUsers: int64Range(100),
		contentIDs:  int64Range(200),
	}
	gen := NewWatchlistGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(23), 800)
	require.NoError(t, err)
	require.NotZero(t, inserted)
	require.Equal(t, inserted, len(repo.watchlist))

	seen := make(map[[2]int64]bool)
	for _, w := range repo.watchlist {
		key := [2]int64{w.UserID, w.ContentID}
		assert.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true

		if w.Watched {
			require.NotNil(t, w.WatchedDate)
			assert.False(t, w.WatchedDate.Before(w.AddedDate),
				"watched %v before added %v", w.WatchedDate, w.AddedDate)
		} else {
			assert.Nil(t, w.WatchedDate)
		}
	}
}

func TestWatchlistGeneratorCapsAtDistinctPairs(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{
		activeUsers: int64Range(3),
		contentIDs:  int64Range(3),
	}
	gen := NewWatchlistGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(2), 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, inserted, 9)
}

func TestWatchlistGeneratorNeedsUsersAndContent(t *testing.T) {
	gen := NewWatchlistGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

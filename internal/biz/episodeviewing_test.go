package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episodeViewPools() *fakePoolRepo {
	episodes := make([]EpisodeRef, 40)
	for i := range episodes {
		episodes[i] = EpisodeRef{ID: int64(i + 1), DurationMinutes: 30 + (i%3)*15}
	}
	sessions := make([]SessionRef, 25)
	for i := range sessions {
		sessions[i] = SessionRef{ID: int64(i + 1), UserID: int64(i%10 + 1)}
	}
	return &fakePoolRepo{
		episodeRefs: episodes,
		activeUsers: int64Range(10),
		tvSessions:  sessions,
	}
}

func TestEpisodeViewGeneratorInvariants(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := episodeViewPools()
	gen := NewEpisodeViewGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(47), 500)
	require.NoError(t, err)
	require.Equal(t, 500, inserted)

	episodeMinutes := make(map[int64]int)
	for _, e := range pools.episodeRefs {
		episodeMinutes[e.ID] = e.DurationMinutes
	}
	sessionUsers := make(map[int64]int64)
	for _, s := range pools.tvSessions {
		sessionUsers[s.ID] = s.UserID
	}

	attached := 0
	for _, v := range repo.episodeViews {
		minutes, ok := episodeMinutes[v.EpisodeID]
		require.True(t, ok, "unknown episode %d", v.EpisodeID)

		assert.Equal(t, v.StartTime.Add(time.Duration(v.DurationWatched)*time.Second), v.EndTime)
		assert.LessOrEqual(t, v.DurationWatched, minutes*60)
		assert.LessOrEqual(t, v.DurationWatched, maxEpisodeWatchSeconds)
		assert.GreaterOrEqual(t, v.DurationWatched, minEpisodeWatchSeconds)
		assert.GreaterOrEqual(t, v.CompletionRate, 0.0)
		assert.LessOrEqual(t, v.CompletionRate, 100.0)

		if v.ViewingSessionID != nil {
			attached++
			owner, ok := sessionUsers[*v.ViewingSessionID]
			require.True(t, ok, "unknown session %d", *v.ViewingSessionID)
			assert.Equal(t, owner, v.UserID, "viewing attributed to another session's user")
		}
	}
	// ~60% of viewings ride an existing tv-show session.
	assert.Greater(t, attached, 200)
	assert.Less(t, attached, 400)
}

func TestEpisodeViewGeneratorWithoutSessions(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := episodeViewPools()
	pools.tvSessions = nil
	gen := NewEpisodeViewGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(5), 100)
	require.NoError(t, err)
	assert.Equal(t, 100, inserted)

	for _, v := range repo.episodeViews {
		assert.Nil(t, v.ViewingSessionID)
		assert.GreaterOrEqual(t, v.UserID, int64(1))
		assert.LessOrEqual(t, v.UserID, int64(10))
	}
}

func TestEpisodeViewGeneratorNeedsEpisodesAndUsers(t *testing.T) {
	gen := NewEpisodeViewGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvision/datagen/internal/catalog"
)

func sessionPools(users, content int) *fakePoolRepo {
	refs := make([]ContentRef, content)
	for i := range refs {
		refs[i] = ContentRef{ID: int64(i + 1), DurationMinutes: 40 + (i%4)*30}
	}
	return &fakePoolRepo{
		activeUsers: int64Range(users),
		contentRefs: refs,
		topRated:    refs[:min(10, len(refs))],
	}
}

func TestSessionGeneratorReferencesOnlyKnownUsersAndContent(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := sessionPools(100, 50)
	gen := NewSessionGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(21), 500)
	require.NoError(t, err)
	require.Equal(t, 500, inserted)

	durations := make(map[int64]int, len(pools.contentRefs))
	for _, ref := range pools.contentRefs {
		durations[ref.ID] = ref.DurationMinutes
	}

	for _, s := range repo.sessions {
		assert.GreaterOrEqual(t, s.UserID, int64(1))
		assert.LessOrEqual(t, s.UserID, int64(100))

		contentMinutes, ok := durations[s.ContentID]
		require.True(t, ok, "unknown content id %d", s.ContentID)
		assert.LessOrEqual(t, s.DurationSeconds, contentMinutes*60)
		assert.LessOrEqual(t, s.DurationSeconds, maxSessionSeconds)
	}
}

func TestSessionGeneratorTimingAndCompletion(t *testing.T) {
	repo := &fakeSeedRepo{}
	gen := NewSessionGenerator(repo, sessionPools(50, 30), testLogger())

	_, err := gen.Generate(context.Background(), NewSource(4), 300)
	require.NoError(t, err)

	for _, s := range repo.sessions {
		assert.Equal(t, s.SessionStart.Add(time.Duration(s.DurationSeconds)*time.Second), s.SessionEnd)
		assert.GreaterOrEqual(t, s.CompletionRate, 0.0)
		assert.LessOrEqual(t, s.CompletionRate, 100.0)
		assert.GreaterOrEqual(t, s.BufferingCount, 0)
	}
}

func TestSessionGeneratorDeviceMatchesPlatform(t *testing.T) {
	repo := &fakeSeedRepo{}
	gen := NewSessionGenerator(repo, sessionPools(50, 30), testLogger())

	_, err := gen.Generate(context.Background(), NewSource(8), 300)
	require.NoError(t, err)

	for _, s := range repo.sessions {
		devices, ok := catalog.PlatformDevices[s.Platform]
		require.True(t, ok, "unknown platform %s", s.Platform)
		assert.Contains(t, devices, s.DeviceType)

		band, ok := catalog.QualityBitrate[s.Quality]
		require.True(t, ok, "unknown quality %s", s.Quality)
		assert.GreaterOrEqual(t, s.AvgBitrate, band[0])
		assert.LessOrEqual(t, s.AvgBitrate, band[1])
	}
}

func TestSessionGeneratorNeedsUsersAndContent(t *testing.T) {
	gen := NewSessionGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)

	gen = NewSessionGenerator(&fakeSeedRepo{}, &fakePoolRepo{activeUsers: int64Range(5)}, testLogger())
	_, err = gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

func TestSessionGeneratorPartialInsertOnFailure(t *testing.T) {
	repo := &fakeSeedRepo{failAfter: 2}
	gen := NewSessionGenerator(repo, sessionPools(50, 30), testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(1), 5000)
	assert.ErrorIs(t, err, errFlush)
	assert.Equal(t, sessionBatchSize, inserted)
}

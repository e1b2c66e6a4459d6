package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeGeneratorInvariants(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{tvShows: int64Range(30)}
	gen := NewEpisodeGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(43), 500)
	require.NoError(t, err)
	assert.LessOrEqual(t, inserted, 500)
	require.Equal(t, inserted, len(repo.episodes))

	type slot struct {
		show    int64
		season  int
		episode int
	}
	seen := make(map[slot]bool)

	for _, e := range repo.episodes {
		key := slot{e.TVShowID, e.SeasonNumber, e.EpisodeNumber}
		assert.False(t, seen[key], "duplicate episode %v", key)
		seen[key] = true

		assert.GreaterOrEqual(t, e.SeasonNumber, 1)
		assert.LessOrEqual(t, e.SeasonNumber, 6)
		assert.GreaterOrEqual(t, e.EpisodeNumber, 1)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Director)
		assert.GreaterOrEqual(t, e.IMDBRating, 6.5)
		assert.LessOrEqual(t, e.IMDBRating, 9.5)
		assert.Contains(t, []int{20, 30, 40, 45, 50, 55, 60, 75}, e.DurationMinutes)
	}
}

func TestEpisodeGeneratorWeeklyReleaseCadence(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{tvShows: int64Range(5)}
	gen := NewEpisodeGenerator(repo, pools, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(3), 200)
	require.NoError(t, err)

	type season struct {
		show   int64
		number int
	}
	byEpisode := make(map[season][]*Episode)
	for _, e := range repo.episodes {
		k := season{e.TVShowID, e.SeasonNumber}
		byEpisode[k] = append(byEpisode[k], e)
	}

	for k, eps := range byEpisode {
		for _, e := range eps {
			if e.EpisodeNumber == 1 {
				continue
			}
			prevFound := false
			for _, p := range eps {
				if p.EpisodeNumber == e.EpisodeNumber-1 {
					assert.Equal(t, p.ReleaseDate.AddDate(0, 0, 7), e.ReleaseDate,
						"season %v episode %d not a week after its predecessor", k, e.EpisodeNumber)
					prevFound = true
					break
				}
			}
			assert.True(t, prevFound, "season %v missing episode %d", k, e.EpisodeNumber-1)
		}
	}
}

func TestEpisodeGeneratorNeedsTVShows(t *testing.T) {
	gen := NewEpisodeGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

func TestEpisodeGeneratorRespectsCap(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{tvShows: int64Range(200)}
	gen := NewEpisodeGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(9), 37)
	require.NoError(t, err)
	assert.Equal(t, 37, inserted)
}

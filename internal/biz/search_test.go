package biz

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchableContent(n int) []ContentSummary {
	out := make([]ContentSummary, n)
	for i := range out {
		out[i] = ContentSummary{ID: int64(i + 1), Title: "The Quiet Storm", Genre: "Drama"}
	}
	return out
}

func TestSearchGeneratorInvariants(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{
		activeUsers: int64Range(50),
		searchable:  searchableContent(80),
	}
	gen := NewSearchGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(41), 600)
	require.NoError(t, err)
	require.Equal(t, 600, inserted)

	guests, clicks := 0, 0
	for _, q := range repo.searches {
		assert.NotEmpty(t, q.QueryText)
		assert.GreaterOrEqual(t, q.ResultsCount, 0)
		assert.LessOrEqual(t, q.ResultsCount, maxSearchResults)
		assert.True(t, strings.HasPrefix(q.SessionID, "sess_"))

		if q.UserID == nil {
			guests++
		} else {
			assert.GreaterOrEqual(t, *q.UserID, int64(1))
			assert.LessOrEqual(t, *q.UserID, int64(50))
		}

		if q.ClickedContentID != nil {
			clicks++
			assert.GreaterOrEqual(t, *q.ClickedContentID, int64(1))
			assert.LessOrEqual(t, *q.ClickedContentID, int64(80))
		}

		if q.SearchFilters != nil {
			var filters map[string]any
			require.NoError(t, json.Unmarshal([]byte(*q.SearchFilters), &filters),
				"filters not valid JSON: %s", *q.SearchFilters)
			assert.NotEmpty(t, filters)
		}
	}

	// ~30% guests, ~40% clicks; keep the bands loose.
	assert.Greater(t, guests, 60)
	assert.Less(t, guests, 350)
	assert.Greater(t, clicks, 100)
}

func TestSearchGeneratorAllGuestsWithoutUsers(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{searchable: searchableContent(20)}
	gen := NewSearchGenerator(repo, pools, testLogger())

	inserted, err := gen.Generate(context.Background(), NewSource(2), 100)
	require.NoError(t, err)
	assert.Equal(t, 100, inserted)

	for _, q := range repo.searches {
		assert.Nil(t, q.UserID)
	}
}

func TestSearchGeneratorNeedsContent(t *testing.T) {
	gen := NewSearchGenerator(&fakeSeedRepo{}, &fakePoolRepo{activeUsers: int64Range(5)}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

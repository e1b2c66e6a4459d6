package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingGeneratorUniquePairsCapResult(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{
		sessionUsers: int64Range(5),
		contentIDs:   int64Range(5),
	}
	gen := NewRatingGenerator(repo, pools, testLogger())

	// 5x5 pool admits at most 25 distinct pairs no matter the target.
	inserted, err := gen.Generate(context.Background(), NewSource(13), 200)
	require.NoError(t, err)
	assert.LessOrEqual(t, inserted, 25)
	assert.Equal(t, inserted, len(repo.ratings))

	seen := make(map[[2]int64]bool)
	for _, rt := range repo.ratings {
		key := [2]int64{rt.UserID, rt.ContentID}
		assert.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
	}
}

func TestRatingGeneratorValueAndReviewInvariants(t *testing.T) {
	repo := &fakeSeedRepo{}
	pools := &fakePoolRepo{
		sessionUsers: int64Range(200),
		contentIDs:   int64Range(300),
	}
	gen := NewRatingGenerator(repo, pools, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(17), 1000)
	require.NoError(t, err)
	require.NotEmpty(t, repo.ratings)

	withReview := 0
	for _, rt := range repo.ratings {
		assert.GreaterOrEqual(t, rt.Rating, 1)
		assert.LessOrEqual(t, rt.Rating, 5)
		assert.GreaterOrEqual(t, rt.HelpfulCount, 0)
		assert.LessOrEqual(t, rt.HelpfulCount, maxHelpfulVotes)
		if rt.ReviewText != nil {
			withReview++
			assert.NotEmpty(t, *rt.ReviewText)
		}
	}
	// Roughly 30% carry reviews.
	assert.Greater(t, withReview, len(repo.ratings)/10)
	assert.Less(t, withReview, len(repo.ratings)/2)
}

func TestRatingGeneratorNeedsViewersAndContent(t *testing.T) {
	gen := NewRatingGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), 10)
	assert.ErrorIs(t, err, ErrDependencyNotSatisfied)
}

func TestRatingGeneratorRejectsNegativeCount(t *testing.T) {
	gen := NewRatingGenerator(&fakeSeedRepo{}, &fakePoolRepo{}, testLogger())

	_, err := gen.Generate(context.Background(), NewSource(1), -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

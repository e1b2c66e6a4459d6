package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/randx"
)

const (
	ratingBatchSize   = 1000
	ratingUserPool    = 3000
	ratingContentPool = 1000
	maxHelpfulVotes   = 100
)

// RatingGenerator synthesizes content ratings from users who have viewing
// history. The requested count is a cap: (user, content) collisions are
// skipped silently, so small pools yield fewer rows than requested.
type RatingGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewRatingGenerator creates a rating generator.
func NewRatingGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *RatingGenerator {
	return &RatingGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates at most count ratings and returns the number actually
// persisted.
func (g *RatingGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative rating count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	userIDs, err := g.pools.SessionUserIDs(ctx, ratingUserPool)
	if err != nil {
		return 0, err
	}
	contentIDs, err := g.pools.ContentIDs(ctx, ratingContentPool)
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 || len(contentIDs) == 0 {
		return 0, fmt.Errorf("%w: ratings need viewing sessions and content; generate them first", ErrDependencyNotSatisfied)
	}

	g.log.Infof("generating up to %d ratings", count)

	r, f := src.Rand, src.Fake
	now := time.Now().UTC()
	userWeights := randx.ExpWeights(r, len(userIDs))
	seen := randx.NewPairSet()

	batch := make([]*Rating, 0, ratingBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		userID, _ := randx.WeightedChoice(r, userIDs, userWeights)
		contentID := contentIDs[r.IntN(len(contentIDs))]

		if !seen.Add(userID, contentID) {
			continue
		}

		base, _ := randx.WeightedChoice(r, []int{1, 2, 3, 4, 5}, []float64{0.1, 0.15, 0.25, 0.3, 0.2})
		value := base + r.IntN(3) - 1
		if value < 1 {
			value = 1
		}
		if value > 5 {
			value = 5
		}

		afterViewing := randx.ClampedExp(r, 7, 0, 90)
		ratingDate := now.
			AddDate(0, 0, -randx.IntBetween(r, 1, 180)).
			Add(-time.Duration(afterViewing * float64(24*time.Hour)))

		var review *string
		if r.Float64() < 0.3 {
			var text string
			if value == 1 || value == 5 {
				text = fakeText(f, randx.IntBetween(r, 100, 500))
			} else {
				text = fakeText(f, randx.IntBetween(r, 50, 200))
			}
			review = &text
		}

		helpful := int(randx.CappedPareto(r, 1.5, maxHelpfulVotes))

		batch = append(batch, &Rating{
			UserID:       userID,
			ContentID:    contentID,
			Rating:       value,
			RatingDate:   ratingDate,
			ReviewText:   review,
			HelpfulCount: helpful,
		})

		if len(batch) >= ratingBatchSize {
			if err := g.repo.CreateRatings(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateRatings(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	if inserted < count {
		g.log.Infof("generated %d ratings (%d duplicate pairs skipped)", inserted, count-inserted)
	} else {
		g.log.Infof("generated %d ratings", inserted)
	}
	return inserted, nil
}

package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/randx"
)

const (
	watchlistBatchSize   = 1000
	watchlistUserPool    = 3000
	watchlistContentPool = 1500
)

// WatchlistGenerator synthesizes watchlist entries. Like ratings, the count
// is a cap and duplicate (user, content) pairs are skipped.
type WatchlistGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewWatchlistGenerator creates a watchlist generator.
func NewWatchlistGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *WatchlistGenerator {
	return &WatchlistGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates at most count watchlist items and returns the number
// persisted. Watched probability grows with time on the list, capped at 80%.
func (g *WatchlistGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative watchlist count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	userIDs, err := g.pools.ActiveUserIDs(ctx, watchlistUserPool)
	if err != nil {
		return 0, err
	}
	contentIDs, err := g.pools.ContentIDs(ctx, watchlistContentPool)
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 || len(contentIDs) == 0 {
		return 0, fmt.Errorf("%w: watchlist needs users and content; generate them first", ErrDependencyNotSatisfied)
	}

	g.log.Infof("generating up to %d watchlist items", count)

	r := src.Rand
	now := time.Now().UTC()
	contentWeights := randx.ExpWeights(r, len(contentIDs))
	seen := randx.NewPairSet()

	batch := make([]*WatchlistItem, 0, watchlistBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		userID := userIDs[r.IntN(len(userIDs))]
		contentID, _ := randx.WeightedChoice(r, contentIDs, contentWeights)

		if !seen.Add(userID, contentID) {
			continue
		}

		daysAgo := randx.ClampedExp(r, 30, 0, 365)
		added := now.Add(-time.Duration(daysAgo * float64(24*time.Hour)))

		daysListed := now.Sub(added).Hours() / 24
		watched := r.Float64() < min(0.8, daysListed/90)

		var watchedDate *time.Time
		if watched {
			delay := randx.ClampedExp(r, 14, 0, 90)
			wd := added.Add(time.Duration(delay * float64(24*time.Hour)))
			watchedDate = &wd
		}

		batch = append(batch, &WatchlistItem{
			UserID:      userID,
			ContentID:   contentID,
			AddedDate:   added,
			Watched:     watched,
			WatchedDate: watchedDate,
		})

		if len(batch) >= watchlistBatchSize {
			if err := g.repo.CreateWatchlistItems(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateWatchlistItems(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d watchlist items", inserted)
	return inserted, nil
}

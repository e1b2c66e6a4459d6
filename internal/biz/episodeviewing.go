package biz

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/randx"
)

const (
	episodeViewBatchSize   = 1000
	episodeViewEpisodePool = 1000
	episodeViewUserPool    = 2000
	episodeViewSessionPool = 5000
	maxEpisodeWatchSeconds = 3600
	minEpisodeWatchSeconds = 300
)

// EpisodeViewGenerator synthesizes per-episode viewing, modeling binge runs
// where a user continues from the previous viewing's end time.
type EpisodeViewGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewEpisodeViewGenerator creates an episode-viewing generator.
func NewEpisodeViewGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *EpisodeViewGenerator {
	return &EpisodeViewGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates count episode viewings and returns the number persisted.
func (g *EpisodeViewGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative episode-view count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	episodes, err := g.pools.EpisodeRefs(ctx, episodeViewEpisodePool)
	if err != nil {
		return 0, err
	}
	userIDs, err := g.pools.ActiveUserIDs(ctx, episodeViewUserPool)
	if err != nil {
		return 0, err
	}
	if len(episodes) == 0 || len(userIDs) == 0 {
		return 0, fmt.Errorf("%w: episode viewing needs episodes and users; generate them first", ErrDependencyNotSatisfied)
	}
	sessions, err := g.pools.TVShowSessionRefs(ctx, episodeViewSessionPool)
	if err != nil {
		return 0, err
	}

	g.log.Infof("generating %d episode viewings", count)

	r := src.Rand
	now := time.Now().UTC()

	batch := make([]*EpisodeViewing, 0, episodeViewBatchSize)
	inserted := 0
	var prev *EpisodeViewing

	for i := 0; i < count; i++ {
		var sessionID *int64
		var userID int64
		if len(sessions) > 0 && r.Float64() < 0.6 {
			ref := sessions[r.IntN(len(sessions))]
			id := ref.ID
			sessionID = &id
			userID = ref.UserID
		} else {
			userID = userIDs[r.IntN(len(userIDs))]
		}

		episode := episodes[r.IntN(len(episodes))]

		// Binge continuation: same user keeps watching shortly after the
		// previous viewing ended.
		var start time.Time
		if prev != nil && r.Float64() < 0.3 && userID == prev.UserID && r.Float64() < 0.7 {
			start = prev.EndTime.Add(time.Duration(randx.IntBetween(r, 1, 60)) * time.Minute)
		} else {
			start = dateBetween(r, now.AddDate(0, 0, -90), now).
				Add(time.Duration(r.IntN(24*3600)) * time.Second)
		}

		episodeSeconds := episode.DurationMinutes * 60
		var watched int
		if r.Float64() < 0.4 {
			watched = episodeSeconds
		} else {
			class, _ := randx.WeightedChoice(r,
				[]string{"short", "medium", "full"}, []float64{0.3, 0.4, 0.3})
			switch class {
			case "short":
				watched = randx.IntBetween(r, 300, 900)
			case "medium":
				watched = randx.IntBetween(r, int(float64(episodeSeconds)*0.3), int(float64(episodeSeconds)*0.7))
			default:
				watched = episodeSeconds
			}
		}
		if max := min(episodeSeconds, maxEpisodeWatchSeconds); watched > max {
			watched = max
		}
		if watched < minEpisodeWatchSeconds {
			watched = min(minEpisodeWatchSeconds, episodeSeconds)
		}

		completion := math.Round(math.Min(float64(watched)/float64(episodeSeconds), 1.0)*100*100) / 100

		view := &EpisodeViewing{
			ViewingSessionID: sessionID,
			EpisodeID:        episode.ID,
			UserID:           userID,
			StartTime:        start,
			EndTime:          start.Add(time.Duration(watched) * time.Second),
			DurationWatched:  watched,
			CompletionRate:   completion,
		}
		prev = view
		batch = append(batch, view)

		if len(batch) >= episodeViewBatchSize {
			if err := g.repo.CreateEpisodeViewings(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateEpisodeViewings(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d episode viewings", inserted)
	return inserted, nil
}

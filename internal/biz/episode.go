package biz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const (
	episodeShowPool = 200
	episodeWeekGap  = 7
)

// EpisodeGenerator synthesizes episodes for tv_show content: a weighted
// number of seasons per show, a weighted number of episodes per season, and
// weekly release dates within each season.
type EpisodeGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewEpisodeGenerator creates an episode generator.
func NewEpisodeGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *EpisodeGenerator {
	return &EpisodeGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates episodes across the tv-show pool, stopping at the cap.
// Returns the number persisted.
func (g *EpisodeGenerator) Generate(ctx context.Context, src *Source, limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("%w: negative episode cap %d", ErrInvalidArgument, limit)
	}
	if limit == 0 {
		return 0, nil
	}

	shows, err := g.pools.TVShowIDs(ctx, episodeShowPool)
	if err != nil {
		return 0, err
	}
	if len(shows) == 0 {
		return 0, fmt.Errorf("%w: episodes need tv_show content; generate content first", ErrDependencyNotSatisfied)
	}

	g.log.Infof("generating up to %d episodes across %d shows", limit, len(shows))

	r, f := src.Rand, src.Fake
	now := time.Now().UTC()

	r.Shuffle(len(shows), func(i, j int) { shows[i], shows[j] = shows[j], shows[i] })

	episodes := make([]*Episode, 0, limit)

showLoop:
	for _, showID := range shows {
		seasons, _ := randx.WeightedChoice(r,
			[]int{1, 2, 3, 4, 5, 6},
			[]float64{0.1, 0.2, 0.3, 0.2, 0.15, 0.05})

		for season := 1; season <= seasons; season++ {
			perSeason, _ := randx.WeightedChoice(r,
				[]int{6, 8, 10, 12, 13, 16, 20, 22},
				[]float64{0.05, 0.1, 0.2, 0.3, 0.2, 0.1, 0.03, 0.02})

			seasonStart := dateBetween(r, now.AddDate(-5, 0, 0), now.AddDate(0, 0, -30))
			director := f.Name()

			for episode := 1; episode <= perSeason; episode++ {
				// Directors rotate occasionally within a season.
				if episode > 1 && r.Float64() < 0.3 {
					director = f.Name()
				}

				episodes = append(episodes, &Episode{
					TVShowID:        showID,
					SeasonNumber:    season,
					EpisodeNumber:   episode,
					Title:           episodeTitle(r, season, episode),
					DurationMinutes: episodeDuration(r),
					ReleaseDate:     seasonStart.AddDate(0, 0, (episode-1)*episodeWeekGap),
					Director:        director,
					IMDBRating:      episodeRating(r, episode, perSeason),
					Description:     fakeText(f, randx.IntBetween(r, 50, 200)),
				})

				if len(episodes) >= limit {
					break showLoop
				}
			}
		}
	}

	if err := g.repo.CreateEpisodes(ctx, episodes); err != nil {
		return 0, err
	}

	g.log.Infof("generated %d episodes", len(episodes))
	return len(episodes), nil
}

func episodeTitle(r *rand.Rand, season, episode int) string {
	var base string
	switch r.IntN(4) {
	case 0:
		base = fmt.Sprintf("Episode %d", episode)
	case 1:
		base = fmt.Sprintf("Chapter %d", episode)
	case 2:
		base = fmt.Sprintf("Part %d", episode)
	default:
		base = fmt.Sprintf("S%02dE%02d", season, episode)
	}
	if r.Float64() < 0.8 {
		return base + ": " + catalog.EpisodeTitleWords[r.IntN(len(catalog.EpisodeTitleWords))]
	}
	return base
}

func episodeDuration(r *rand.Rand) int {
	d, _ := randx.WeightedChoice(r,
		[]int{20, 30, 40, 45, 50, 55, 60, 75},
		[]float64{0.05, 0.1, 0.2, 0.25, 0.2, 0.1, 0.08, 0.02})
	return d
}

// episodeRating skews premieres and finales higher than mid-season episodes.
func episodeRating(r *rand.Rand, episode, perSeason int) float64 {
	var lo, hi float64
	switch {
	case episode == 1 || episode == perSeason:
		lo, hi = 7.5, 9.5
	case episode < 3 || episode > perSeason-2:
		lo, hi = 7.0, 8.5
	default:
		lo, hi = 6.5, 8.0
	}
	return float64(int(randx.FloatBetween(r, lo, hi)*10)) / 10
}

package biz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const (
	searchBatchSize   = 1000
	searchUserPool    = 3000
	searchContentPool = 1000
	maxSearchResults  = 500
)

// SearchGenerator synthesizes the search log: query text built from one of
// six patterns, optional structured filters, and click-through events biased
// toward popular content. Roughly 30% of searches are by guests.
type SearchGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewSearchGenerator creates a search-query generator.
func NewSearchGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *SearchGenerator {
	return &SearchGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates count search queries and returns the number persisted.
func (g *SearchGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative search count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	userIDs, err := g.pools.ActiveUserIDs(ctx, searchUserPool)
	if err != nil {
		return 0, err
	}
	content, err := g.pools.SearchableContent(ctx, searchContentPool)
	if err != nil {
		return 0, err
	}
	if len(content) == 0 {
		return 0, fmt.Errorf("%w: search queries need content; generate it first", ErrDependencyNotSatisfied)
	}

	g.log.Infof("generating %d search queries", count)

	r := src.Rand
	now := time.Now().UTC()

	// A stable "popular" subset attracts most of the clicks.
	popular := make([]ContentSummary, 0, len(content)/3)
	for _, c := range content {
		if r.Float64() < 0.3 {
			popular = append(popular, c)
		}
	}

	batch := make([]*SearchQuery, 0, searchBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		var userID *int64
		if r.Float64() < 0.7 && len(userIDs) > 0 {
			id := userIDs[r.IntN(len(userIDs))]
			userID = &id
		}

		queryText := buildQueryText(r, content)

		hour := r.IntN(24)
		scale := 14.0
		if hour >= 18 && hour <= 23 {
			scale = 7.0
		}
		daysAgo := randx.ClampedExp(r, scale, 0, 90)
		searchDate := now.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
		searchDate = time.Date(searchDate.Year(), searchDate.Month(), searchDate.Day(),
			hour, r.IntN(60), searchDate.Second(), 0, time.UTC)

		results := int(randx.CappedPareto(r, 1.2, maxSearchResults))

		var clicked *int64
		if r.Float64() < 0.4 {
			pick := content[r.IntN(len(content))]
			if len(popular) > 0 {
				pick = popular[r.IntN(len(popular))]
			}
			clicked = &pick.ID
		}

		filters := buildFilters(r)

		sessionID := fmt.Sprintf("sess_%06d_%d", randx.IntBetween(r, 100000, 999999), searchDate.Unix())

		batch = append(batch, &SearchQuery{
			UserID:           userID,
			QueryText:        queryText,
			SearchDate:       searchDate,
			ResultsCount:     results,
			ClickedContentID: clicked,
			SearchFilters:    filters,
			SessionID:        sessionID,
		})

		if len(batch) >= searchBatchSize {
			if err := g.repo.CreateSearchQueries(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateSearchQueries(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d search queries", inserted)
	return inserted, nil
}

// buildQueryText assembles query text from one of six patterns: partial
// title, keyword(s), actor, director, year, or a cross-category mix.
func buildQueryText(r *rand.Rand, content []ContentSummary) string {
	pattern, _ := randx.WeightedChoice(r,
		[]string{"single", "multiple", "actor", "director", "year", "mixed"},
		[]float64{0.2, 0.3, 0.15, 0.1, 0.1, 0.15})

	switch pattern {
	case "single":
		title := content[r.IntN(len(content))].Title
		words := strings.Fields(title)
		if len(words) > 3 {
			words = words[:3]
		}
		return words[r.IntN(len(words))]
	case "multiple":
		cat := catalog.SearchKeywordCategories[r.IntN(len(catalog.SearchKeywordCategories))]
		pool := catalog.SearchKeywords[cat]
		n := randx.IntBetween(r, 1, min(3, len(pool)))
		words, _ := randx.SampleN(r, pool, n)
		return strings.Join(words, " ")
	case "actor":
		return catalog.SearchKeywords["actors"][r.IntN(len(catalog.SearchKeywords["actors"]))]
	case "director":
		return catalog.SearchKeywords["directors"][r.IntN(len(catalog.SearchKeywords["directors"]))]
	case "year":
		return catalog.SearchKeywords["years"][r.IntN(len(catalog.SearchKeywords["years"]))]
	default:
		n := randx.IntBetween(r, 2, 3)
		cats, _ := randx.SampleN(r, catalog.SearchKeywordCategories, n)
		words := make([]string, 0, n)
		for _, cat := range cats {
			pool := catalog.SearchKeywords[cat]
			words = append(words, pool[r.IntN(len(pool))])
		}
		return strings.Join(words, " ")
	}
}

// buildFilters assembles the optional structured filter payload, each field
// included with its own probability. Returns nil when no filters apply.
func buildFilters(r *rand.Rand) *string {
	if r.Float64() >= 0.5 {
		return nil
	}
	filters := make(map[string]any)

	if r.Float64() < 0.6 {
		genres := catalog.SearchKeywords["genres"]
		filters["genre"] = genres[r.IntN(len(genres))]
	}
	if r.Float64() < 0.4 {
		switch r.IntN(3) {
		case 0:
			filters["year"] = randx.IntBetween(r, 1990, 2024)
		case 1:
			start := randx.IntBetween(r, 1990, 2015)
			filters["year_range"] = []int{start, start + randx.IntBetween(r, 5, 15)}
		default:
			filters["decade"] = catalog.Decades[r.IntN(len(catalog.Decades))]
		}
	}
	if r.Float64() < 0.3 {
		filters["min_rating"] = float64(randx.IntBetween(r, 60, 90)) / 10
	}
	if r.Float64() < 0.2 {
		filters["content_type"] = catalog.ContentTypes[r.IntN(len(catalog.ContentTypes))]
	}

	if len(filters) == 0 {
		return nil
	}
	raw, err := json.Marshal(filters)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

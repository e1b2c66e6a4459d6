package biz

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const contentBatchSize = 500

// ContentGenerator synthesizes the content library: movies, shows,
// documentaries, shorts and originals.
type ContentGenerator struct {
	repo SeedRepo
	log  *log.Helper
}

// NewContentGenerator creates a content generator.
func NewContentGenerator(repo SeedRepo, logger log.Logger) *ContentGenerator {
	return &ContentGenerator{repo: repo, log: log.NewHelper(logger)}
}

// Generate creates count content records and flushes them in batches.
func (g *ContentGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative content count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}
	g.log.Infof("generating %d content records", count)

	r, f := src.Rand, src.Fake
	now := time.Now().UTC()
	titles := movieTitles(r, count+1000)

	batch := make([]*Content, 0, contentBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		title := titles[i%len(titles)]
		if r.Float64() < 0.1 {
			title = fmt.Sprintf("%s (%d)", title, randx.IntBetween(r, 1990, 2024))
		}

		contentType, _ := randx.WeightedChoice(r, catalog.ContentTypes, catalog.ContentTypeWeights)

		mainGenre, subgenres := pickGenres(r, contentType)
		var subgenre *string
		if len(subgenres) > 0 {
			joined := strings.Join(subgenres, ", ")
			subgenre = &joined
		}

		releaseYear := pickReleaseYear(r, contentType)
		duration := pickDuration(r, contentType)
		director, _ := randx.Choice(r, catalog.Directors)
		mainActor := pickActors(r)
		imdbRating := pickIMDBRating(r, contentType)

		ratingWeights, ok := catalog.ContentRatingWeights[contentType]
		if !ok {
			ratingWeights = catalog.ContentRatingWeights["default"]
		}
		contentRating, _ := randx.WeightedChoice(r, catalog.ContentRatings, ratingWeights)

		isOriginal := r.Float64() < catalog.OriginalProbability[contentType]

		addedDate := dateBetween(r,
			time.Date(releaseYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			now.AddDate(0, 0, -randx.IntBetween(r, 0, 365)))
		if addedDate.Year() < releaseYear {
			addedDate = time.Date(releaseYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		}

		countryCount, _ := randx.WeightedChoice(r, []int{3, 5, 8, 10, 15}, []float64{0.1, 0.3, 0.4, 0.15, 0.05})
		if countryCount > len(catalog.Countries) {
			countryCount = len(catalog.Countries)
		}
		available, _ := randx.SampleN(r, catalog.Countries, countryCount)

		tags := buildTags(r, mainGenre, subgenres)

		var description string
		lengthClass, _ := randx.WeightedChoice(r, []string{"short", "medium", "long"}, []float64{0.3, 0.5, 0.2})
		switch lengthClass {
		case "short":
			description = f.Sentence(10)
		case "medium":
			description = fakeText(f, 150)
		default:
			description = fakeText(f, 300)
		}

		batch = append(batch, &Content{
			Title:              title,
			ContentType:        contentType,
			Genre:              mainGenre,
			Subgenre:           subgenre,
			ReleaseYear:        releaseYear,
			DurationMinutes:    duration,
			Director:           director,
			MainActor:          mainActor,
			IMDBRating:         imdbRating,
			ContentRating:      contentRating,
			IsOriginal:         isOriginal,
			AddedDate:          addedDate,
			AvailableCountries: available,
			Tags:               tags,
			Description:        description,
		})

		if len(batch) >= contentBatchSize {
			if err := g.repo.CreateContent(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateContent(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d content records", inserted)
	return inserted, nil
}

// pickGenres returns the main genre and secondary genres. Documentaries force
// the Documentary main genre; everything else excludes it from both slots.
func pickGenres(r *rand.Rand, contentType string) (string, []string) {
	if contentType == "documentary" {
		n, _ := randx.WeightedChoice(r, []int{0, 1, 2}, []float64{0.3, 0.5, 0.2})
		subs, _ := randx.SampleN(r, genresExcluding("Documentary"), n)
		return "Documentary", subs
	}
	main, _ := randx.WeightedChoice(r, catalog.Genres, catalog.GenreWeights)
	n, _ := randx.WeightedChoice(r, []int{0, 1, 2, 3}, []float64{0.2, 0.4, 0.3, 0.1})
	subs, _ := randx.SampleN(r, genresExcluding(main, "Documentary"), n)
	return main, subs
}

func genresExcluding(excluded ...string) []string {
	out := make([]string, 0, len(catalog.Genres))
	for _, g := range catalog.Genres {
		skip := false
		for _, e := range excluded {
			if g == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, g)
		}
	}
	return out
}

// pickReleaseYear biases toward recent years; tv shows start at 1990, the
// rest at 1970.
func pickReleaseYear(r *rand.Rand, contentType string) int {
	if contentType == "tv_show" {
		years := yearRange(1990, 2024)
		weights := repeatWeights([]float64{0.01, 0.02, 0.03, 0.04}, []int{10, 10, 10, 5})
		y, _ := randx.WeightedChoice(r, years, weights)
		return y
	}
	years := yearRange(1970, 2024)
	weights := repeatWeights([]float64{0.005, 0.01, 0.02, 0.03}, []int{20, 10, 10, 15})
	y, _ := randx.WeightedChoice(r, years, weights)
	return y
}

func yearRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, y)
	}
	return out
}

func repeatWeights(values []float64, counts []int) []float64 {
	var out []float64
	for i, v := range values {
		for j := 0; j < counts[i]; j++ {
			out = append(out, v)
		}
	}
	return out
}

// pickDuration draws a runtime in minutes appropriate to the content type.
func pickDuration(r *rand.Rand, contentType string) int {
	switch contentType {
	case "movie":
		minutes := yearRange(80, 180)
		weights := repeatWeights([]float64{0.1, 0.15, 0.1, 0.05}, []int{20, 30, 31, 20})
		d, _ := randx.WeightedChoice(r, minutes, weights)
		return d
	case "tv_show":
		d, _ := randx.WeightedChoice(r,
			[]int{20, 30, 40, 45, 50, 55, 60},
			[]float64{0.05, 0.1, 0.2, 0.3, 0.2, 0.1, 0.05})
		return d
	case "documentary":
		return randx.IntBetween(r, 45, 120)
	default:
		return randx.IntBetween(r, 5, 50)
	}
}

// pickIMDBRating draws a type-conditioned normal rating clamped to [1, 10]
// and rounded to one decimal.
func pickIMDBRating(r *rand.Rand, contentType string) float64 {
	var mean, std float64
	switch contentType {
	case "original":
		mean, std = 7.0, 1.2
	case "documentary":
		mean, std = 7.2, 0.8
	default:
		mean = randx.FloatBetween(r, 6.0, 7.5)
		std = randx.FloatBetween(r, 1.0, 1.8)
	}
	return math.Round(randx.ClampedNorm(r, mean, std, 1.0, 10.0)*10) / 10
}

func pickActors(r *rand.Rand) string {
	lead, _ := randx.Choice(r, catalog.Actors)
	if r.Float64() < 0.3 {
		others := make([]string, 0, len(catalog.Actors)-1)
		for _, a := range catalog.Actors {
			if a != lead {
				others = append(others, a)
			}
		}
		second, _ := randx.Choice(r, others)
		return lead + ", " + second
	}
	return lead
}

// buildTags joins lowercased genres with 2-4 extra tags drawn across tag
// categories, deduplicated.
func buildTags(r *rand.Rand, mainGenre string, subgenres []string) []string {
	tags := []string{strings.ToLower(mainGenre)}
	for _, s := range subgenres {
		tags = append(tags, strings.ToLower(s))
	}
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	extra := randx.IntBetween(r, 2, 4)
	for i := 0; i < extra; i++ {
		cat, _ := randx.Choice(r, catalog.TagCategoryNames)
		tag, _ := randx.Choice(r, catalog.TagCategories[cat])
		if _, dup := seen[tag]; !dup {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

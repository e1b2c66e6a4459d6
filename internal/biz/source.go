package biz

import (
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

// Source bundles the seeded random stream and the fake-identity generator a
// run draws from. Two runs built from the same seed produce the same dataset
// against the same sink state.
type Source struct {
	Rand *rand.Rand
	Fake *gofakeit.Faker
}

// NewSource builds a deterministic Source from a seed.
func NewSource(seed uint64) *Source {
	return &Source{
		Rand: rand.New(rand.NewPCG(seed, 0x5ee0)),
		Fake: gofakeit.New(seed),
	}
}

// fakeText builds free text of roughly maxChars length from faker sentences.
func fakeText(f *gofakeit.Faker, maxChars int) string {
	var b strings.Builder
	for b.Len() < maxChars {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Sentence(8))
	}
	out := b.String()
	if len(out) > maxChars {
		if cut := strings.LastIndexByte(out[:maxChars], ' '); cut > 0 {
			out = out[:cut]
		} else {
			out = out[:maxChars]
		}
	}
	return out
}

// movieTitles builds count synthetic titles from the catalog word lists,
// shuffled to avoid sequential patterns.
func movieTitles(r *rand.Rand, count int) []string {
	patternWeights := []float64{0.15, 0.15, 0.15, 0.1, 0.15, 0.1, 0.1, 0.1}
	titles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		titles = append(titles, oneTitle(r, patternWeights))
	}
	r.Shuffle(len(titles), func(i, j int) {
		titles[i], titles[j] = titles[j], titles[i]
	})
	return titles
}

func oneTitle(r *rand.Rand, patternWeights []float64) string {
	pick := func(items []string) string { return items[r.IntN(len(items))] }
	pattern, _ := randx.WeightedIndex(r, patternWeights)

	var title string
	switch pattern {
	case 0:
		title = pick(catalog.TitleAdjectives) + " " + pick(catalog.TitleNouns)
	case 1:
		title = pick(catalog.TitlePrefixes) + " " + pick(catalog.TitleAdjectives) + " " + pick(catalog.TitleNouns)
	case 2:
		title = pick(catalog.TitleNouns) + " of the " + pick(catalog.TitleNouns)
	case 3:
		title = pick(catalog.TitleNouns) + " & " + pick(catalog.TitleNouns)
	case 4:
		title = pick(catalog.TitlePrefixes) + " " + pick(catalog.TitleNouns)
	case 5:
		title = pick(catalog.TitleAdjectives) + " " + pick(catalog.TitleNouns) + ": " + pick(catalog.TitleSuffixes)
	case 6:
		title = pick(catalog.TitleNouns) + " " + string(rune('1'+r.IntN(5)))
	default:
		title = pick(catalog.TitleCodewords) + " " + pick(catalog.TitleCodenames)
	}

	if r.Float64() < 0.25 {
		switch r.IntN(3) {
		case 0:
			title += ": " + pick(catalog.TitleSuffixes)
		case 1:
			title += " - " + pick(catalog.TitleSubtitles)
		default:
			title += " (" + pick(catalog.TitleParts) + ")"
		}
	}
	return title
}

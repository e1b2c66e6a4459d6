package biz

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const (
	sessionBatchSize   = 2000
	sessionUserPool    = 5000
	popularContentPool = 100
	maxSessionSeconds  = 7200
)

// Hourly weights for session start times, weekday vs weekend.
var (
	weekdayHourWeights = repeatWeights(
		[]float64{0.01, 0.02, 0.03, 0.05, 0.08, 0.04}, []int{6, 4, 4, 4, 4, 2})
	weekendHourWeights = repeatWeights(
		[]float64{0.02, 0.04, 0.06, 0.08, 0.1, 0.06}, []int{6, 4, 4, 4, 4, 2})
	hoursOfDay = yearRange(0, 23)
)

// SessionGenerator synthesizes viewing sessions against the existing user and
// content pools.
type SessionGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewSessionGenerator creates a viewing-session generator.
func NewSessionGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *SessionGenerator {
	return &SessionGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates count viewing sessions. Users are picked with
// exponential weights to model power users; 30% of content picks come from
// the top-rated subset.
func (g *SessionGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative session count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	userIDs, err := g.pools.ActiveUserIDs(ctx, sessionUserPool)
	if err != nil {
		return 0, err
	}
	contentRefs, err := g.pools.ContentRefs(ctx, 0)
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 || len(contentRefs) == 0 {
		return 0, fmt.Errorf("%w: viewing sessions need users and content; generate them first", ErrDependencyNotSatisfied)
	}
	popular, err := g.pools.TopRatedContent(ctx, popularContentPool)
	if err != nil {
		return 0, err
	}
	if len(popular) == 0 {
		popular = contentRefs
	}

	g.log.Infof("generating %d viewing sessions over %d users and %d content records",
		count, len(userIDs), len(contentRefs))

	r, f := src.Rand, src.Fake
	now := time.Now().UTC()
	userWeights := randx.ExpWeights(r, len(userIDs))

	batch := make([]*ViewingSession, 0, sessionBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		userID, _ := randx.WeightedChoice(r, userIDs, userWeights)

		ref := contentRefs[r.IntN(len(contentRefs))]
		if r.Float64() < 0.3 {
			ref = popular[r.IntN(len(popular))]
		}

		batch = append(batch, g.oneSession(r, f, now, userID, ref))

		if len(batch) >= sessionBatchSize {
			if err := g.repo.CreateViewingSessions(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateViewingSessions(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d viewing sessions", inserted)
	return inserted, nil
}

func (g *SessionGenerator) oneSession(r *rand.Rand, f *gofakeit.Faker, now time.Time, userID int64, ref ContentRef) *ViewingSession {
	daysAgo := randx.ClampedExp(r, 30, 1, 180)
	start := now.Add(-time.Duration(daysAgo * float64(24*time.Hour)))

	hourWeights := weekdayHourWeights
	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		hourWeights = weekendHourWeights
	}
	hour, _ := randx.WeightedChoice(r, hoursOfDay, hourWeights)
	start = time.Date(start.Year(), start.Month(), start.Day(),
		hour, r.IntN(60), r.IntN(60), 0, time.UTC)

	contentSeconds := ref.DurationMinutes * 60
	var duration int
	completionType, _ := randx.WeightedChoice(r,
		[]string{"full", "partial", "short"}, []float64{0.3, 0.5, 0.2})
	switch completionType {
	case "full":
		duration = randx.IntBetween(r, int(float64(contentSeconds)*0.9), contentSeconds)
	case "partial":
		duration = randx.IntBetween(r, int(float64(contentSeconds)*0.3), int(float64(contentSeconds)*0.8))
	default:
		duration = randx.IntBetween(r, 60, 600)
	}
	if max := min(contentSeconds, maxSessionSeconds); duration > max {
		duration = max
	}

	end := start.Add(time.Duration(duration) * time.Second)
	completion := math.Round(math.Min(float64(duration)/float64(contentSeconds), 1.0)*100*100) / 100

	platform, _ := randx.WeightedChoice(r, catalog.Platforms, catalog.PlatformWeights)
	devices := catalog.PlatformDevices[platform]
	device := devices[r.IntN(len(devices))]

	quality, _ := randx.WeightedChoice(r, catalog.Qualities, qualityWeights(r, device, hour))
	band := catalog.QualityBitrate[quality]
	bitrate := randx.IntBetween(r, band[0], band[1])

	buffering := bufferingCount(r)

	var city *string
	if r.Float64() < 0.7 {
		c := f.City()
		city = &c
	}

	var ip *string
	if r.Float64() < 0.6 {
		var addr string
		if r.Float64() < 0.9 {
			addr = f.IPv4Address()
		} else {
			addr = f.IPv6Address()
		}
		ip = &addr
	}

	return &ViewingSession{
		UserID:          userID,
		ContentID:       ref.ID,
		SessionStart:    start,
		SessionEnd:      end,
		DurationSeconds: duration,
		Platform:        platform,
		DeviceType:      device,
		Quality:         quality,
		CompletionRate:  completion,
		BufferingCount:  buffering,
		AvgBitrate:      bitrate,
		City:            city,
		IPAddress:       ip,
	}
}

// qualityWeights condition quality on the device class, prime-time hour, and
// a mobile-data chance for handheld devices.
func qualityWeights(r *rand.Rand, device string, hour int) []float64 {
	switch device {
	case "tv", "desktop", "laptop":
		if hour >= 18 {
			return []float64{0.05, 0.2, 0.5, 0.2, 0.05}
		}
		return []float64{0.1, 0.3, 0.4, 0.15, 0.05}
	default:
		if r.Float64() < 0.3 {
			return []float64{0.4, 0.5, 0.1, 0, 0}
		}
		return []float64{0.2, 0.5, 0.2, 0.05, 0.05}
	}
}

// bufferingCount follows a four-tier ladder: most sessions never buffer.
func bufferingCount(r *rand.Rand) int {
	switch p := r.Float64(); {
	case p < 0.6:
		return 0
	case p < 0.85:
		return randx.IntBetween(r, 1, 2)
	case p < 0.95:
		return randx.IntBetween(r, 3, 5)
	default:
		return randx.IntBetween(r, 6, 10)
	}
}

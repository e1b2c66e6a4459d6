package biz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const userBatchSize = 1000

// Birth decades and their weights in the subscriber base.
var (
	birthDecades      = []int{1950, 1960, 1970, 1980, 1990, 2000, 2010}
	birthDecadeWeight = []float64{0.02, 0.05, 0.1, 0.15, 0.25, 0.3, 0.13}
)

// UserGenerator synthesizes platform subscribers.
type UserGenerator struct {
	repo SeedRepo
	log  *log.Helper
}

// NewUserGenerator creates a user generator.
func NewUserGenerator(repo SeedRepo, logger log.Logger) *UserGenerator {
	return &UserGenerator{repo: repo, log: log.NewHelper(logger)}
}

// Generate creates count users and flushes them in batches. It returns the
// number of users persisted.
func (g *UserGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative user count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}
	g.log.Infof("generating %d users", count)

	r, f := src.Rand, src.Fake
	now := time.Now().UTC()
	titles := movieTitles(r, 500)

	batch := make([]*User, 0, userBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		var email string
		switch r.IntN(3) {
		case 0:
			email = f.Email()
		case 1:
			email = fmt.Sprintf("%s%d@%s", f.Username(), randx.IntBetween(r, 10, 999), f.DomainName())
		default:
			suffix := ""
			if r.IntN(2) == 0 {
				suffix = strconv.Itoa(randx.IntBetween(r, 1, 99))
			}
			email = fmt.Sprintf("%s.%s%s@%s",
				strings.ToLower(f.FirstName()), strings.ToLower(f.LastName()), suffix, f.DomainName())
		}

		var username string
		switch r.IntN(4) {
		case 0:
			username = fmt.Sprintf("%s_%d", f.Username(), randx.IntBetween(r, 100, 9999))
		case 1:
			username = fmt.Sprintf("%s%s%d", f.FirstName(), f.LastName(), randx.IntBetween(r, 1, 99))
		case 2:
			title := titles[r.IntN(len(titles))]
			username = fmt.Sprintf("%s%d",
				strings.ToLower(strings.ReplaceAll(title, " ", "_")), randx.IntBetween(r, 1, 999))
		default:
			seps := []string{"_", ".", ""}
			username = fmt.Sprintf("%s%s%s%d", f.Word(), seps[r.IntN(3)], f.Word(), randx.IntBetween(r, 10, 999))
		}

		country, _ := randx.WeightedChoice(r, catalog.Countries, catalog.CountryWeights)
		decade, _ := randx.WeightedChoice(r, birthDecades, birthDecadeWeight)
		birthYear := decade + r.IntN(10)
		ageGroup := ageGroupFor(r, birthYear, now.Year())
		plan, _ := randx.WeightedChoice(r, catalog.SubscriptionPlans, catalog.PlanWeights)

		start := dateBetween(r,
			now.AddDate(0, 0, -randx.IntBetween(r, 30, 730)),
			now.AddDate(0, 0, -randx.IntBetween(r, 0, 30)))

		var end time.Time
		if plan == "free_trial" {
			trialDays, _ := randx.WeightedChoice(r, []int{7, 14, 30}, []float64{0.4, 0.4, 0.2})
			end = start.AddDate(0, 0, trialDays)
		} else {
			durDays, _ := randx.WeightedChoice(r,
				[]int{30, 90, 180, 365, 730},
				[]float64{0.4, 0.25, 0.15, 0.15, 0.05})
			end = start.AddDate(0, 0, durDays)
		}

		created := start.Add(-time.Duration(float64(randx.IntBetween(r, 1, 60)) * r.Float64() * float64(24*time.Hour)))

		var lastLogin *time.Time
		if r.Float64() < 0.75 {
			daysAgo := randx.ClampedExp(r, 14, 1, 90)
			ll := now.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
			if ll.Before(created) {
				ll = created.Add(time.Hour)
			}
			lastLogin = &ll
		}

		var active bool
		if lastLogin != nil {
			sinceLogin := int(now.Sub(*lastLogin).Hours() / 24)
			active = sinceLogin < randx.IntBetween(r, 30, 90)
		} else {
			active = r.Float64() < 0.3
		}

		var payment *string
		if plan != "free_trial" {
			weights, ok := catalog.PaymentMethodWeights[country]
			if !ok {
				weights = catalog.PaymentMethodWeights["default"]
			}
			method, _ := randx.WeightedChoice(r, catalog.PaymentMethods, weights)
			payment = &method
		}

		device, _ := randx.WeightedChoice(r, catalog.DeviceTypes, catalog.DeviceWeights)

		batch = append(batch, &User{
			Email:             email,
			Username:          username,
			FirstName:         f.FirstName(),
			LastName:          f.LastName(),
			Country:           country,
			AgeGroup:          ageGroup,
			SubscriptionPlan:  plan,
			SubscriptionStart: start,
			SubscriptionEnd:   end,
			CreatedAt:         created,
			LastLogin:         lastLogin,
			IsActive:          active,
			PaymentMethod:     payment,
			DevicePreference:  device,
		})

		if len(batch) >= userBatchSize {
			if err := g.repo.CreateUsers(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateUsers(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d users", inserted)
	return inserted, nil
}

// ageGroupFor maps a birth year to a bracket, with deliberate fuzz at the
// extremes to avoid razor-sharp demographic cliffs.
func ageGroupFor(r *rand.Rand, birthYear, currentYear int) string {
	age := currentYear - birthYear
	switch {
	case age < 13:
		if r.Float64() < 0.5 {
			return "13-17"
		}
		return "18-24"
	case age <= 17:
		return "13-17"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		if r.Float64() < 0.3 && r.Float64() < 0.5 {
			return "45-54"
		}
		return "55+"
	}
}

// dateBetween picks a uniform instant between a and b, truncated to the day.
func dateBetween(r *rand.Rand, a, b time.Time) time.Time {
	if b.Before(a) {
		a, b = b, a
	}
	span := b.Sub(a)
	t := a.Add(time.Duration(r.Float64() * float64(span)))
	return t.Truncate(24 * time.Hour)
}

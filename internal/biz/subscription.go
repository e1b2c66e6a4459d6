package biz

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/catalog"
	"github.com/streamvision/datagen/internal/randx"
)

const (
	subscriptionBatchSize = 1000
	subscriptionUserPool  = 4000
)

// Event-type distributions conditioned on the user's current plan.
var planEventTable = map[string]struct {
	types   []string
	weights []float64
}{
	"free_trial": {
		types:   []string{"subscription_start", "upgrade", "cancellation"},
		weights: []float64{0.7, 0.2, 0.1},
	},
	"basic": {
		types:   []string{"renewal", "upgrade", "downgrade", "cancellation", "payment_failed"},
		weights: []float64{0.5, 0.3, 0.05, 0.1, 0.05},
	},
	"standard": {
		types:   []string{"renewal", "upgrade", "downgrade", "cancellation", "payment_failed"},
		weights: []float64{0.6, 0.2, 0.1, 0.05, 0.05},
	},
	"premium": {
		types:   []string{"renewal", "downgrade", "cancellation", "payment_failed"},
		weights: []float64{0.7, 0.15, 0.1, 0.05},
	},
	"family": {
		types:   []string{"renewal", "downgrade", "cancellation", "payment_failed"},
		weights: []float64{0.8, 0.1, 0.05, 0.05},
	},
}

// SubscriptionGenerator synthesizes billing-lifecycle events. Each user gets
// at most a randomized bound of events (3-8, fixed per user per run).
type SubscriptionGenerator struct {
	repo  SeedRepo
	pools PoolRepo
	log   *log.Helper
}

// NewSubscriptionGenerator creates a subscription-event generator.
func NewSubscriptionGenerator(repo SeedRepo, pools PoolRepo, logger log.Logger) *SubscriptionGenerator {
	return &SubscriptionGenerator{repo: repo, pools: pools, log: log.NewHelper(logger)}
}

// Generate creates at most count subscription events and returns the number
// persisted. Draws landing on a user already at their cap are skipped.
func (g *SubscriptionGenerator) Generate(ctx context.Context, src *Source, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative event count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return 0, nil
	}

	users, err := g.pools.UsersWithPlans(ctx, subscriptionUserPool)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, fmt.Errorf("%w: subscription events need users; generate them first", ErrDependencyNotSatisfied)
	}

	g.log.Infof("generating up to %d subscription events for %d users", count, len(users))

	r := src.Rand
	now := time.Now().UTC()
	userWeights := randx.ExpWeights(r, len(users))
	eventCount := make(map[int64]int, len(users))
	eventCap := make(map[int64]int, len(users))

	batch := make([]*SubscriptionEvent, 0, subscriptionBatchSize)
	inserted := 0

	for i := 0; i < count; i++ {
		idx, _ := randx.WeightedIndex(r, userWeights)
		user := users[idx]

		if _, ok := eventCap[user.ID]; !ok {
			eventCap[user.ID] = randx.IntBetween(r, 3, 8)
		}
		if eventCount[user.ID] >= eventCap[user.ID] {
			continue
		}
		eventCount[user.ID]++

		batch = append(batch, g.oneEvent(r, now, user))

		if len(batch) >= subscriptionBatchSize {
			if err := g.repo.CreateSubscriptionEvents(ctx, batch); err != nil {
				return inserted, err
			}
			inserted += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.repo.CreateSubscriptionEvents(ctx, batch); err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	g.log.Infof("generated %d subscription events", inserted)
	return inserted, nil
}

func (g *SubscriptionGenerator) oneEvent(r *rand.Rand, now time.Time, user UserPlan) *SubscriptionEvent {
	table, ok := planEventTable[user.Plan]
	if !ok {
		table = planEventTable["basic"]
	}
	eventType, _ := randx.WeightedChoice(r, table.types, table.weights)

	daysAgo := randx.ClampedExp(r, 180, 0, 730)
	eventDate := now.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
	// Billing events cluster at month end.
	if r.Float64() < 0.3 && eventDate.Day() > 25 {
		day := randx.IntBetween(r, 28, 31)
		if last := lastDayOfMonth(eventDate); day > last {
			day = last
		}
		eventDate = time.Date(eventDate.Year(), eventDate.Month(), day,
			eventDate.Hour(), eventDate.Minute(), eventDate.Second(), 0, time.UTC)
	}

	previous, next := planTransition(r, eventType, user.Plan)

	var amount *float64
	if next != nil && eventType != "payment_failed" {
		band := catalog.PlanPriceBands[*next]
		base := randx.FloatBetween(r, band[0], band[1])
		if r.Float64() < 0.1 {
			discounts := []float64{0.1, 0.15, 0.2, 0.25}
			base *= 1 - discounts[r.IntN(len(discounts))]
		}
		rounded := math.Round(base*100) / 100
		amount = &rounded
	}

	var gateway, txnID *string
	if amount != nil && *amount > 0 {
		gw, _ := randx.WeightedChoice(r, catalog.PaymentGateways, catalog.GatewayWeights)
		gateway = &gw
		id := fmt.Sprintf("txn_%09d_%d", randx.IntBetween(r, 100000000, 999999999), eventDate.Unix())
		txnID = &id
	}

	return &SubscriptionEvent{
		UserID:         user.ID,
		EventType:      eventType,
		EventDate:      eventDate,
		PreviousPlan:   previous,
		NewPlan:        next,
		Amount:         amount,
		Currency:       "USD",
		PaymentGateway: gateway,
		TransactionID:  txnID,
	}
}

// planTransition resolves (previous_plan, new_plan) for an event type.
// Upgrades go strictly up the tier ladder and downgrades strictly down,
// falling back to the current plan when no legal target exists.
func planTransition(r *rand.Rand, eventType, current string) (*string, *string) {
	switch eventType {
	case "subscription_start":
		trial := "free_trial"
		return nil, &trial
	case "upgrade", "downgrade":
		level := catalog.PlanTiers[current]
		var candidates []string
		for _, p := range catalog.SubscriptionPlans {
			if eventType == "upgrade" && catalog.PlanTiers[p] > level {
				candidates = append(candidates, p)
			}
			if eventType == "downgrade" && catalog.PlanTiers[p] < level {
				candidates = append(candidates, p)
			}
		}
		next := current
		if len(candidates) > 0 {
			next = candidates[r.IntN(len(candidates))]
		}
		prev := current
		return &prev, &next
	case "cancellation":
		prev := current
		return &prev, nil
	default: // renewal, payment_failed
		prev, next := current, current
		return &prev, &next
	}
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

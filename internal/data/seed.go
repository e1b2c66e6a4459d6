package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/streamvision/datagen/internal/biz"
)

// insertChunkSize bounds a single INSERT statement; each flush still commits
// as one transaction.
const insertChunkSize = 500

type seedRepo struct {
	data *Data
	log  *log.Helper
}

// NewSeedRepo creates the bulk-write repository backing all generators.
func NewSeedRepo(data *Data, logger log.Logger) biz.SeedRepo {
	return &seedRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// createBatch inserts rows atomically; a failure rolls the whole flush back.
func createBatch[T any](ctx context.Context, r *seedRepo, table string, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.data.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, insertChunkSize).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", biz.ErrBatchWrite, table, err)
	}
	r.invalidatePools(ctx, table)
	return nil
}

// invalidatePools drops cached foreign-key pools whose source table changed.
func (r *seedRepo) invalidatePools(ctx context.Context, table string) {
	if r.data.rdb == nil {
		return
	}
	iter := r.data.rdb.Scan(ctx, 0, "pool:"+table+":*", 0).Iterator()
	for iter.Next(ctx) {
		r.data.rdb.Del(ctx, iter.Val())
	}
}

func (r *seedRepo) CreateUsers(ctx context.Context, users []*biz.User) error {
	rows := make([]*User, 0, len(users))
	for _, u := range users {
		rows = append(rows, &User{
			Email:             u.Email,
			Username:          u.Username,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			Country:           u.Country,
			AgeGroup:          u.AgeGroup,
			SubscriptionPlan:  u.SubscriptionPlan,
			SubscriptionStart: u.SubscriptionStart,
			SubscriptionEnd:   u.SubscriptionEnd,
			CreatedAt:         u.CreatedAt,
			LastLogin:         u.LastLogin,
			IsActive:          u.IsActive,
			PaymentMethod:     u.PaymentMethod,
			DevicePreference:  u.DevicePreference,
		})
	}
	return createBatch(ctx, r, "users", rows)
}

func (r *seedRepo) CreateContent(ctx context.Context, content []*biz.Content) error {
	rows := make([]*Content, 0, len(content))
	for _, c := range content {
		rows = append(rows, &Content{
			Title:              c.Title,
			ContentType:        c.ContentType,
			Genre:              c.Genre,
			Subgenre:           c.Subgenre,
			ReleaseYear:        c.ReleaseYear,
			DurationMinutes:    c.DurationMinutes,
			Director:           c.Director,
			MainActor:          c.MainActor,
			IMDBRating:         c.IMDBRating,
			ContentRating:      c.ContentRating,
			IsOriginal:         c.IsOriginal,
			AddedDate:          c.AddedDate,
			AvailableCountries: strings.Join(c.AvailableCountries, ","),
			Tags:               strings.Join(c.Tags, ","),
			Description:        c.Description,
		})
	}
	return createBatch(ctx, r, "content", rows)
}

func (r *seedRepo) CreateViewingSessions(ctx context.Context, sessions []*biz.ViewingSession) error {
	rows := make([]*ViewingSession, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, &ViewingSession{
			UserID:          s.UserID,
			ContentID:       s.ContentID,
			SessionStart:    s.SessionStart,
			SessionEnd:      s.SessionEnd,
			DurationSeconds: s.DurationSeconds,
			Platform:        s.Platform,
			DeviceType:      s.DeviceType,
			Quality:         s.Quality,
			CompletionRate:  s.CompletionRate,
			BufferingCount:  s.BufferingCount,
			AvgBitrate:      s.AvgBitrate,
			City:            s.City,
			IPAddress:       s.IPAddress,
		})
	}
	return createBatch(ctx, r, "viewing_sessions", rows)
}

func (r *seedRepo) CreateRatings(ctx context.Context, ratings []*biz.Rating) error {
	rows := make([]*Rating, 0, len(ratings))
	for _, rt := range ratings {
		rows = append(rows, &Rating{
			UserID:       rt.UserID,
			ContentID:    rt.ContentID,
			Rating:       rt.Rating,
			RatingDate:   rt.RatingDate,
			ReviewText:   rt.ReviewText,
			HelpfulCount: rt.HelpfulCount,
		})
	}
	return createBatch(ctx, r, "ratings", rows)
}

func (r *seedRepo) CreateWatchlistItems(ctx context.Context, items []*biz.WatchlistItem) error {
	rows := make([]*WatchlistItem, 0, len(items))
	for _, w := range items {
		rows = append(rows, &WatchlistItem{
			UserID:      w.UserID,
			ContentID:   w.ContentID,
			AddedDate:   w.AddedDate,
			Watched:     w.Watched,
			WatchedDate: w.WatchedDate,
		})
	}
	return createBatch(ctx, r, "watchlist", rows)
}

func (r *seedRepo) CreateSubscriptionEvents(ctx context.Context, events []*biz.SubscriptionEvent) error {
	rows := make([]*SubscriptionEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, &SubscriptionEvent{
			UserID:         e.UserID,
			EventType:      e.EventType,
			EventDate:      e.EventDate,
			PreviousPlan:   e.PreviousPlan,
			NewPlan:        e.NewPlan,
			Amount:         e.Amount,
			Currency:       e.Currency,
			PaymentGateway: e.PaymentGateway,
			TransactionID:  e.TransactionID,
		})
	}
	return createBatch(ctx, r, "subscription_events", rows)
}

func (r *seedRepo) CreateSearchQueries(ctx context.Context, queries []*biz.SearchQuery) error {
	rows := make([]*SearchQuery, 0, len(queries))
	for _, q := range queries {
		rows = append(rows, &SearchQuery{
			UserID:           q.UserID,
			QueryText:        q.QueryText,
			SearchDate:       q.SearchDate,
			ResultsCount:     q.ResultsCount,
			ClickedContentID: q.ClickedContentID,
			SearchFilters:    q.SearchFilters,
			SessionID:        q.SessionID,
		})
	}
	return createBatch(ctx, r, "search_queries", rows)
}

func (r *seedRepo) CreateEpisodes(ctx context.Context, episodes []*biz.Episode) error {
	rows := make([]*Episode, 0, len(episodes))
	for _, e := range episodes {
		rows = append(rows, &Episode{
			TVShowID:        e.TVShowID,
			SeasonNumber:    e.SeasonNumber,
			EpisodeNumber:   e.EpisodeNumber,
			Title:           e.Title,
			DurationMinutes: e.DurationMinutes,
			ReleaseDate:     e.ReleaseDate,
			Director:        e.Director,
			IMDBRating:      e.IMDBRating,
			Description:     e.Description,
		})
	}
	return createBatch(ctx, r, "episodes", rows)
}

func (r *seedRepo) CreateEpisodeViewings(ctx context.Context, viewings []*biz.EpisodeViewing) error {
	rows := make([]*EpisodeViewing, 0, len(viewings))
	for _, v := range viewings {
		rows = append(rows, &EpisodeViewing{
			ViewingSessionID: v.ViewingSessionID,
			EpisodeID:        v.EpisodeID,
			UserID:           v.UserID,
			StartTime:        v.StartTime,
			EndTime:          v.EndTime,
			DurationWatched:  v.DurationWatched,
			CompletionRate:   v.CompletionRate,
		})
	}
	return createBatch(ctx, r, "episode_viewing", rows)
}

package biz

import (
	"context"
	"time"
)

// User domain model
type User struct {
	Email             string
	Username          string
	FirstName         string
	LastName          string
	Country           string
	AgeGroup          string
	SubscriptionPlan  string
	SubscriptionStart time.Time
	SubscriptionEnd   time.Time
	CreatedAt         time.Time
	LastLogin         *time.Time
	IsActive          bool
	PaymentMethod     *string
	DevicePreference  string
}

// Content domain model
type Content struct {
	Title              string
	ContentType        string
	Genre              string
	Subgenre           *string
	ReleaseYear        int
	DurationMinutes    int
	Director           string
	MainActor          string
	IMDBRating         float64
	ContentRating      string
	IsOriginal         bool
	AddedDate          time.Time
	AvailableCountries []string
	Tags               []string
	Description        string
}

// ViewingSession domain model
type ViewingSession struct {
	UserID          int64
	ContentID       int64
	SessionStart    time.Time
	SessionEnd      time.Time
	DurationSeconds int
	Platform        string
	DeviceType      string
	Quality         string
	CompletionRate  float64
	BufferingCount  int
	AvgBitrate      int
	City            *string
	IPAddress       *string
}

// Rating domain model
type Rating struct {
	UserID       int64
	ContentID    int64
	Rating       int
	RatingDate   time.Time
	ReviewText   *string
	HelpfulCount int
}

// WatchlistItem domain model
type WatchlistItem struct {
	UserID      int64
	ContentID   int64
	AddedDate   time.Time
	Watched     bool
	WatchedDate *time.Time
}

// SubscriptionEvent domain model
type SubscriptionEvent struct {
	UserID         int64
	EventType      string
	EventDate      time.Time
	PreviousPlan   *string
	NewPlan        *string
	Amount         *float64
	Currency       string
	PaymentGateway *string
	TransactionID  *string
}

// SearchQuery domain model
type SearchQuery struct {
	UserID           *int64
	QueryText        string
	SearchDate       time.Time
	ResultsCount     int
	ClickedContentID *int64
	SearchFilters    *string
	SessionID        string
}

// Episode domain model
type Episode struct {
	TVShowID        int64
	SeasonNumber    int
	EpisodeNumber   int
	Title           string
	DurationMinutes int
	ReleaseDate     time.Time
	Director        string
	IMDBRating      float64
	Description     string
}

// EpisodeViewing domain model
type EpisodeViewing struct {
	ViewingSessionID *int64
	EpisodeID        int64
	UserID           int64
	StartTime        time.Time
	EndTime          time.Time
	DurationWatched  int
	CompletionRate   float64
}

// ContentRef pairs a content id with its runtime, the minimum a session
// generator needs from the content pool.
type ContentRef struct {
	ID              int64
	DurationMinutes int
}

// ContentSummary carries what the search generator needs from content.
type ContentSummary struct {
	ID    int64
	Title string
	Genre string
}

// UserPlan pairs a user id with its current subscription plan.
type UserPlan struct {
	ID   int64
	Plan string
}

// SessionRef pairs a viewing-session id with its user.
type SessionRef struct {
	ID     int64
	UserID int64
}

// EpisodeRef pairs an episode id with its runtime.
type EpisodeRef struct {
	ID              int64
	DurationMinutes int
}

// TableCount is one row of the verification summary.
type TableCount struct {
	Label string
	Count int64
}

// PlanShare is one slice of the subscription-plan breakdown.
type PlanShare struct {
	Plan       string
	Count      int64
	Percentage float64
}

// TableSnapshot is a full read of one table, used by the CSV exporter.
type TableSnapshot struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// Tables lists the sink tables in reset (reverse-dependency) order.
var Tables = []string{
	"episode_viewing",
	"episodes",
	"search_queries",
	"subscription_events",
	"watchlist",
	"ratings",
	"viewing_sessions",
	"content",
	"users",
}

// SeedRepo is the generators' sole write path. Each call is one batch flush:
// atomic, rolled back wholesale on failure.
type SeedRepo interface {
	CreateUsers(ctx context.Context, users []*User) error
	CreateContent(ctx context.Context, content []*Content) error
	CreateViewingSessions(ctx context.Context, sessions []*ViewingSession) error
	CreateRatings(ctx context.Context, ratings []*Rating) error
	CreateWatchlistItems(ctx context.Context, items []*WatchlistItem) error
	CreateSubscriptionEvents(ctx context.Context, events []*SubscriptionEvent) error
	CreateSearchQueries(ctx context.Context, queries []*SearchQuery) error
	CreateEpisodes(ctx context.Context, episodes []*Episode) error
	CreateEpisodeViewings(ctx context.Context, viewings []*EpisodeViewing) error
}

// PoolRepo serves the read-only foreign-key pools generators sample from.
type PoolRepo interface {
	ActiveUserIDs(ctx context.Context, limit int) ([]int64, error)
	UsersWithPlans(ctx context.Context, limit int) ([]UserPlan, error)
	ContentRefs(ctx context.Context, limit int) ([]ContentRef, error)
	TopRatedContent(ctx context.Context, limit int) ([]ContentRef, error)
	ContentIDs(ctx context.Context, limit int) ([]int64, error)
	SearchableContent(ctx context.Context, limit int) ([]ContentSummary, error)
	SessionUserIDs(ctx context.Context, limit int) ([]int64, error)
	TVShowIDs(ctx context.Context, limit int) ([]int64, error)
	EpisodeRefs(ctx context.Context, limit int) ([]EpisodeRef, error)
	TVShowSessionRefs(ctx context.Context, limit int) ([]SessionRef, error)
}

// AdminRepo covers verification, snapshots for export, and the destructive
// reset.
type AdminRepo interface {
	RowCounts(ctx context.Context) ([]TableCount, error)
	TotalWatchSeconds(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	AverageCompletion(ctx context.Context) (float64, error)
	PlanBreakdown(ctx context.Context) ([]PlanShare, error)
	Snapshot(ctx context.Context, table string) (*TableSnapshot, error)
	Reset(ctx context.Context) error
}

// Confirmer gates destructive operations behind an explicit confirmation.
type Confirmer interface {
	Confirm(action string) bool
}

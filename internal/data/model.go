package data

import "time"

// User represents the users table
type User struct {
	ID                int64      `gorm:"primaryKey;column:user_id"`
	Email             string     `gorm:"uniqueIndex;not null;size:255"`
	Username          string     `gorm:"not null;size:100"`
	FirstName         string     `gorm:"not null;size:100"`
	LastName          string     `gorm:"not null;size:100"`
	Country           string     `gorm:"not null;size:100;index"`
	AgeGroup          string     `gorm:"not null;size:10"`
	SubscriptionPlan  string     `gorm:"not null;size:20;index"`
	SubscriptionStart time.Time  `gorm:"not null;type:date"`
	SubscriptionEnd   time.Time  `gorm:"not null;type:date"`
	CreatedAt         time.Time  `gorm:"not null;type:timestamptz"`
	LastLogin         *time.Time
	IsActive          bool       `gorm:"not null;index"`
	PaymentMethod     *string    `gorm:"size:50"`
	DevicePreference  string     `gorm:"not null;size:20"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Content represents the content table. Array-valued fields are stored as
// comma-joined text.
type Content struct {
	ID                 int64     `gorm:"primaryKey;column:content_id"`
	Title              string    `gorm:"not null;size:255;index"`
	ContentType        string    `gorm:"not null;size:20;index"`
	Genre              string    `gorm:"not null;size:50;index"`
	Subgenre           *string
	ReleaseYear        int       `gorm:"not null"`
	DurationMinutes    int       `gorm:"not null"`
	Director           string    `gorm:"not null;size:100"`
	MainActor          string    `gorm:"not null;size:100"`
	IMDBRating         float64   `gorm:"column:imdb_rating;not null;type:decimal(3,1)"`
	ContentRating      string    `gorm:"not null;size:10"`
	IsOriginal         bool      `gorm:"not null"`
	AddedDate          time.Time `gorm:"not null;type:date"`
	AvailableCountries string    `gorm:"not null;type:text"`
	Tags               string    `gorm:"not null;type:text"`
	Description        string    `gorm:"not null;type:text"`
}

// TableName overrides the table name
func (Content) TableName() string {
	return "content"
}

// ViewingSession represents the viewing_sessions table
type ViewingSession struct {
	ID              int64     `gorm:"primaryKey;column:session_id"`
	UserID          int64     `gorm:"not null;index"`
	ContentID       int64     `gorm:"not null;index"`
	SessionStart    time.Time `gorm:"not null;type:timestamptz;index"`
	SessionEnd      time.Time `gorm:"not null;type:timestamptz"`
	DurationSeconds int       `gorm:"not null"`
	Platform        string    `gorm:"not null;size:20"`
	DeviceType      string    `gorm:"not null;size:20"`
	Quality         string    `gorm:"not null;size:10"`
	CompletionRate  float64   `gorm:"not null;type:decimal(5,2)"`
	BufferingCount  int       `gorm:"not null"`
	AvgBitrate      int       `gorm:"not null"`
	City            *string   `gorm:"size:100"`
	IPAddress       *string   `gorm:"size:45"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content Content `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (ViewingSession) TableName() string {
	return "viewing_sessions"
}

// Rating represents the ratings table
type Rating struct {
	ID           int64     `gorm:"primaryKey;column:rating_id"`
	UserID       int64     `gorm:"not null;uniqueIndex:uq_rating_user_content"`
	ContentID    int64     `gorm:"not null;uniqueIndex:uq_rating_user_content"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	RatingDate   time.Time `gorm:"not null;type:timestamptz"`
	ReviewText   *string   `gorm:"type:text"`
	HelpfulCount int       `gorm:"not null"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content Content `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Rating) TableName() string {
	return "ratings"
}

// WatchlistItem represents the watchlist table
type WatchlistItem struct {
	ID          int64     `gorm:"primaryKey;column:watchlist_id"`
	UserID      int64     `gorm:"not null;uniqueIndex:uq_watchlist_user_content"`
	ContentID   int64     `gorm:"not null;uniqueIndex:uq_watchlist_user_content"`
	AddedDate   time.Time `gorm:"not null;type:timestamptz"`
	Watched     bool      `gorm:"not null"`
	WatchedDate *time.Time

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content Content `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (WatchlistItem) TableName() string {
	return "watchlist"
}

// SubscriptionEvent represents the subscription_events table
type SubscriptionEvent struct {
	ID             int64     `gorm:"primaryKey;column:event_id"`
	UserID         int64     `gorm:"not null;index"`
	EventType      string    `gorm:"not null;size:30;index"`
	EventDate      time.Time `gorm:"not null;type:timestamptz"`
	PreviousPlan   *string   `gorm:"size:20"`
	NewPlan        *string   `gorm:"size:20"`
	Amount         *float64  `gorm:"type:decimal(10,2)"`
	Currency       string    `gorm:"not null;size:3"`
	PaymentGateway *string   `gorm:"size:30"`
	TransactionID  *string   `gorm:"size:60"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (SubscriptionEvent) TableName() string {
	return "subscription_events"
}

// SearchQuery represents the search_queries table. SearchFilters carries the
// structured filter payload as jsonb.
type SearchQuery struct {
	ID               int64     `gorm:"primaryKey;column:query_id"`
	UserID           *int64    `gorm:"index"`
	QueryText        string    `gorm:"not null;size:255"`
	SearchDate       time.Time `gorm:"not null;type:timestamptz;index"`
	ResultsCount     int       `gorm:"not null"`
	ClickedContentID *int64
	SearchFilters    *string   `gorm:"type:jsonb"`
	SessionID        string    `gorm:"not null;size:40"`
}

// TableName overrides the table name
func (SearchQuery) TableName() string {
	return "search_queries"
}

// Episode represents the episodes table
type Episode struct {
	ID              int64     `gorm:"primaryKey;column:episode_id"`
	TVShowID        int64     `gorm:"column:tv_show_id;not null;uniqueIndex:uq_episode_show_season_ep"`
	SeasonNumber    int       `gorm:"not null;uniqueIndex:uq_episode_show_season_ep"`
	EpisodeNumber   int       `gorm:"not null;uniqueIndex:uq_episode_show_season_ep"`
	Title           string    `gorm:"not null;size:255"`
	DurationMinutes int       `gorm:"not null"`
	ReleaseDate     time.Time `gorm:"not null;type:date"`
	Director        string    `gorm:"not null;size:100"`
	IMDBRating      float64   `gorm:"column:imdb_rating;not null;type:decimal(3,1)"`
	Description     string    `gorm:"not null;type:text"`

	TVShow Content `gorm:"foreignKey:TVShowID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Episode) TableName() string {
	return "episodes"
}

// EpisodeViewing represents the episode_viewing table
type EpisodeViewing struct {
	ID               int64     `gorm:"primaryKey;column:viewing_id"`
	ViewingSessionID *int64    `gorm:"index"`
	EpisodeID        int64     `gorm:"not null;index"`
	UserID           int64     `gorm:"not null;index"`
	StartTime        time.Time `gorm:"not null;type:timestamptz"`
	EndTime          time.Time `gorm:"not null;type:timestamptz"`
	DurationWatched  int       `gorm:"not null"`
	CompletionRate   float64   `gorm:"not null;type:decimal(5,2)"`

	Episode Episode `gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (EpisodeViewing) TableName() string {
	return "episode_viewing"
}

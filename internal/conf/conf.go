package conf

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
)

// Duration decodes from config as either a duration string ("200ms") or a
// number of nanoseconds.
type Duration time.Duration

// AsDuration returns the value as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = Duration(x)
		return nil
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", x, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration type %T", v)
	}
}

// Bootstrap is the top-level configuration.
type Bootstrap struct {
	Data     *Data     `json:"data"`
	Export   *Export   `json:"export"`
	Generate *Generate `json:"generate"`
}

// Data holds database and cache settings.
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database holds the Postgres DSN.
type Database struct {
	Source string `json:"source"`
}

// Redis holds cache connection settings. The cache is optional; an
// unreachable address degrades to direct database reads.
type Redis struct {
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Export holds object-store settings for the CSV export.
type Export struct {
	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix"`
	CredentialsFile string `json:"credentials_file"`
}

// Generate holds generation defaults overridable per run.
type Generate struct {
	Seed               uint64 `json:"seed"`
	Users              int    `json:"users"`
	Content            int    `json:"content"`
	ViewingSessions    int    `json:"viewing_sessions"`
	Ratings            int    `json:"ratings"`
	WatchlistItems     int    `json:"watchlist_items"`
	SubscriptionEvents int    `json:"subscription_events"`
	SearchQueries      int    `json:"search_queries"`
	Episodes           int    `json:"episodes"`
	EpisodeViewings    int    `json:"episode_viewings"`
}

// Load reads configuration from the given file path, with environment
// variables (SV_ prefix) taking precedence.
func Load(path string) (*Bootstrap, error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource("SV_"),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, err
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, err
	}
	if bc.Data == nil {
		bc.Data = &Data{}
	}
	if bc.Data.Database == nil {
		bc.Data.Database = &Database{}
	}
	if bc.Data.Redis == nil {
		bc.Data.Redis = &Redis{}
	}
	if bc.Export == nil {
		bc.Export = &Export{}
	}
	if bc.Generate == nil {
		bc.Generate = &Generate{}
	}
	return &bc, nil
}

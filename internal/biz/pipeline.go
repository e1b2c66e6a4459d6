package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Counts holds the per-entity generation targets.
type Counts struct {
	Users              int
	Content            int
	ViewingSessions    int
	Ratings            int
	WatchlistItems     int
	SubscriptionEvents int
	SearchQueries      int
	Episodes           int
	EpisodeViewings    int
}

// DefaultCounts are the full-mode targets.
func DefaultCounts() Counts {
	return Counts{
		Users:              10000,
		Content:            5000,
		ViewingSessions:    100000,
		Ratings:            30000,
		WatchlistItems:     20000,
		SubscriptionEvents: 15000,
		SearchQueries:      25000,
		Episodes:           5000,
		EpisodeViewings:    30000,
	}
}

// StageResult reports one generation stage.
type StageResult struct {
	Name      string
	Requested int
	Inserted  int
}

// RunReport summarizes a pipeline run. Stages lists every stage that ran,
// including a failed one (its Inserted reflects rows committed before the
// failure).
type RunReport struct {
	RunID  string
	Stages []StageResult
}

// TotalInserted sums inserted rows across stages.
func (r *RunReport) TotalInserted() int {
	total := 0
	for _, s := range r.Stages {
		total += s.Inserted
	}
	return total
}

// Summary is the verification readout.
type Summary struct {
	Counts            []TableCount
	TotalRecords      int64
	TotalWatchHours   float64
	AverageRating     float64
	AverageCompletion float64
	PlanBreakdown     []PlanShare
}

// Pipeline sequences the generators in dependency order and owns the
// verification and reset operations.
type Pipeline struct {
	users         *UserGenerator
	content       *ContentGenerator
	sessions      *SessionGenerator
	ratings       *RatingGenerator
	watchlist     *WatchlistGenerator
	subscriptions *SubscriptionGenerator
	searches      *SearchGenerator
	episodes      *EpisodeGenerator
	episodeViews  *EpisodeViewGenerator
	admin         AdminRepo
	log           *log.Helper
}

// NewPipeline wires the generators into a driver.
func NewPipeline(
	users *UserGenerator,
	content *ContentGenerator,
	sessions *SessionGenerator,
	ratings *RatingGenerator,
	watchlist *WatchlistGenerator,
	subscriptions *SubscriptionGenerator,
	searches *SearchGenerator,
	episodes *EpisodeGenerator,
	episodeViews *EpisodeViewGenerator,
	admin AdminRepo,
	logger log.Logger,
) *Pipeline {
	return &Pipeline{
		users:         users,
		content:       content,
		sessions:      sessions,
		ratings:       ratings,
		watchlist:     watchlist,
		subscriptions: subscriptions,
		searches:      searches,
		episodes:      episodes,
		episodeViews:  episodeViews,
		admin:         admin,
		log:           log.NewHelper(logger),
	}
}

// Run executes every stage in dependency order. The first failing stage
// aborts the run; the returned report covers everything committed up to and
// including the failure.
func (p *Pipeline) Run(ctx context.Context, src *Source, counts Counts) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}
	p.log.Infof("pipeline run %s starting", report.RunID)

	stages := []struct {
		name  string
		count int
		gen   func(context.Context, *Source, int) (int, error)
	}{
		{"users", counts.Users, p.users.Generate},
		{"content", counts.Content, p.content.Generate},
		{"viewing_sessions", counts.ViewingSessions, p.sessions.Generate},
		{"ratings", counts.Ratings, p.ratings.Generate},
		{"watchlist", counts.WatchlistItems, p.watchlist.Generate},
		{"subscription_events", counts.SubscriptionEvents, p.subscriptions.Generate},
		{"search_queries", counts.SearchQueries, p.searches.Generate},
		{"episodes", counts.Episodes, p.episodes.Generate},
		{"episode_viewing", counts.EpisodeViewings, p.episodeViews.Generate},
	}

	for _, stage := range stages {
		inserted, err := stage.gen(ctx, src, stage.count)
		report.Stages = append(report.Stages, StageResult{
			Name:      stage.name,
			Requested: stage.count,
			Inserted:  inserted,
		})
		if err != nil {
			p.log.Errorf("stage %s failed after %d rows: %v", stage.name, inserted, err)
			return report, fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}

	p.log.Infof("pipeline run %s complete: %d rows", report.RunID, report.TotalInserted())
	return report, nil
}

// Verify reads back per-table counts and aggregate statistics.
func (p *Pipeline) Verify(ctx context.Context) (*Summary, error) {
	counts, err := p.admin.RowCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read row counts: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}

	watchSeconds, err := p.admin.TotalWatchSeconds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch time: %w", err)
	}
	avgRating, err := p.admin.AverageRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read average rating: %w", err)
	}
	avgCompletion, err := p.admin.AverageCompletion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read average completion: %w", err)
	}
	plans, err := p.admin.PlanBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan breakdown: %w", err)
	}

	return &Summary{
		Counts:            counts,
		TotalRecords:      total,
		TotalWatchHours:   float64(watchSeconds) / 3600,
		AverageRating:     avgRating,
		AverageCompletion: avgCompletion,
		PlanBreakdown:     plans,
	}, nil
}

// Reset truncates all nine tables and restarts identity counters. It runs
// only when the supplied Confirmer approves; a refusal is a clean no-op.
// Returns whether the reset was performed.
func (p *Pipeline) Reset(ctx context.Context, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("delete ALL StreamVision data (irreversible)") {
		p.log.Info("reset cancelled")
		return false, nil
	}

	p.log.Warn("reset confirmed, truncating all tables")
	if err := p.admin.Reset(ctx); err != nil {
		return false, fmt.Errorf("reset failed: %w", err)
	}
	p.log.Warn("all tables truncated")
	return true, nil
}

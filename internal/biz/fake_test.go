package biz

import (
	"context"
	"errors"
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

func testLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

var errFlush = errors.New("flush failed")

// fakeSeedRepo accumulates every flushed batch in memory.
type fakeSeedRepo struct {
	users        []*User
	content      []*Content
	sessions     []*ViewingSession
	ratings      []*Rating
	watchlist    []*WatchlistItem
	events       []*SubscriptionEvent
	searches     []*SearchQuery
	episodes     []*Episode
	episodeViews []*EpisodeViewing

	flushSizes []int
	failAfter  int // fail the Nth flush (1-based); 0 disables
}

func (f *fakeSeedRepo) flush(n int) error {
	f.flushSizes = append(f.flushSizes, n)
	if f.failAfter > 0 && len(f.flushSizes) >= f.failAfter {
		return errFlush
	}
	return nil
}

func (f *fakeSeedRepo) CreateUsers(_ context.Context, users []*User) error {
	f.users = append(f.users, users...)
	return f.flush(len(users))
}

func (f *fakeSeedRepo) CreateContent(_ context.Context, content []*Content) error {
	f.content = append(f.content, content...)
	return f.flush(len(content))
}

func (f *fakeSeedRepo) CreateViewingSessions(_ context.Context, sessions []*ViewingSession) error {
	f.sessions = append(f.sessions, sessions...)
	return f.flush(len(sessions))
}

func (f *fakeSeedRepo) CreateRatings(_ context.Context, ratings []*Rating) error {
	f.ratings = append(f.ratings, ratings...)
	return f.flush(len(ratings))
}

func (f *fakeSeedRepo) CreateWatchlistItems(_ context.Context, items []*WatchlistItem) error {
	f.watchlist = append(f.watchlist, items...)
	return f.flush(len(items))
}

func (f *fakeSeedRepo) CreateSubscriptionEvents(_ context.Context, events []*SubscriptionEvent) error {
	f.events = append(f.events, events...)
	return f.flush(len(events))
}

func (f *fakeSeedRepo) CreateSearchQueries(_ context.Context, queries []*SearchQuery) error {
	f.searches = append(f.searches, queries...)
	return f.flush(len(queries))
}

func (f *fakeSeedRepo) CreateEpisodes(_ context.Context, episodes []*Episode) error {
	f.episodes = append(f.episodes, episodes...)
	return f.flush(len(episodes))
}

func (f *fakeSeedRepo) CreateEpisodeViewings(_ context.Context, viewings []*EpisodeViewing) error {
	f.episodeViews = append(f.episodeViews, viewings...)
	return f.flush(len(viewings))
}

// fakePoolRepo serves fixed pools, honoring the limit argument.
type fakePoolRepo struct {
	activeUsers  []int64
	userPlans    []UserPlan
	contentRefs  []ContentRef
	topRated     []ContentRef
	contentIDs   []int64
	searchable   []ContentSummary
	sessionUsers []int64
	tvShows      []int64
	episodeRefs  []EpisodeRef
	tvSessions   []SessionRef
	err          error
}

func limited[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

func (f *fakePoolRepo) ActiveUserIDs(_ context.Context, limit int) ([]int64, error) {
	return limited(f.activeUsers, limit), f.err
}

func (f *fakePoolRepo) UsersWithPlans(_ context.Context, limit int) ([]UserPlan, error) {
	return limited(f.userPlans, limit), f.err
}

func (f *fakePoolRepo) ContentRefs(_ context.Context, limit int) ([]ContentRef, error) {
	return limited(f.contentRefs, limit), f.err
}

func (f *fakePoolRepo) TopRatedContent(_ context.Context, limit int) ([]ContentRef, error) {
	return limited(f.topRated, limit), f.err
}

func (f *fakePoolRepo) ContentIDs(_ context.Context, limit int) ([]int64, error) {
	return limited(f.contentIDs, limit), f.err
}

func (f *fakePoolRepo) SearchableContent(_ context.Context, limit int) ([]ContentSummary, error) {
	return limited(f.searchable, limit), f.err
}

func (f *fakePoolRepo) SessionUserIDs(_ context.Context, limit int) ([]int64, error) {
	return limited(f.sessionUsers, limit), f.err
}

func (f *fakePoolRepo) TVShowIDs(_ context.Context, limit int) ([]int64, error) {
	return limited(f.tvShows, limit), f.err
}

func (f *fakePoolRepo) EpisodeRefs(_ context.Context, limit int) ([]EpisodeRef, error) {
	return limited(f.episodeRefs, limit), f.err
}

func (f *fakePoolRepo) TVShowSessionRefs(_ context.Context, limit int) ([]SessionRef, error) {
	return limited(f.tvSessions, limit), f.err
}

// fakeAdminRepo serves canned verification data and records resets.
type fakeAdminRepo struct {
	counts     []TableCount
	watchSecs  int64
	avgRating  float64
	avgDone    float64
	plans      []PlanShare
	resetCalls int
	err        error
}

func (f *fakeAdminRepo) RowCounts(context.Context) ([]TableCount, error) {
	return f.counts, f.err
}

func (f *fakeAdminRepo) TotalWatchSeconds(context.Context) (int64, error) {
	return f.watchSecs, f.err
}

func (f *fakeAdminRepo) AverageRating(context.Context) (float64, error) {
	return f.avgRating, f.err
}

func (f *fakeAdminRepo) AverageCompletion(context.Context) (float64, error) {
	return f.avgDone, f.err
}

func (f *fakeAdminRepo) PlanBreakdown(context.Context) ([]PlanShare, error) {
	return f.plans, f.err
}

func (f *fakeAdminRepo) Snapshot(_ context.Context, table string) (*TableSnapshot, error) {
	return &TableSnapshot{Table: table}, f.err
}

func (f *fakeAdminRepo) Reset(context.Context) error {
	f.resetCalls++
	return f.err
}

// fixedConfirmer always answers the same way.
type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

func int64Range(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

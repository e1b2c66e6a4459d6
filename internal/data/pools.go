package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/streamvision/datagen/internal/biz"
)

const poolCacheTTL = 5 * time.Minute

type poolRepo struct {
	data *Data
	log  *log.Helper
}

// NewPoolRepo creates the read-only repository serving foreign-key pools.
// Pools are cached in Redis when it is available; writes to a source table
// invalidate its pools.
func NewPoolRepo(data *Data, logger log.Logger) biz.PoolRepo {
	return &poolRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// cachedQuery runs query, caching the result under key. A limit of zero or
// below means unlimited.
func cachedQuery[T any](ctx context.Context, r *poolRepo, key string, query func(db *gorm.DB) *gorm.DB) ([]T, error) {
	if r.data.rdb != nil {
		cached, err := r.data.rdb.Get(ctx, key).Result()
		if err == nil {
			var out []T
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				r.log.Debugf("cache hit for %s", key)
				return out, nil
			}
		}
	}

	var out []T
	if err := query(r.data.db.WithContext(ctx)).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: %s: %v", biz.ErrConnection, key, err)
	}

	if r.data.rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			r.data.rdb.Set(ctx, key, raw, poolCacheTTL)
		}
	}
	return out, nil
}

func withLimit(db *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return db.Limit(limit)
	}
	return db
}

func (r *poolRepo) ActiveUserIDs(ctx context.Context, limit int) ([]int64, error) {
	key := fmt.Sprintf("pool:users:active:%d", limit)
	return cachedQuery[int64](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&User{}).
			Select("user_id").
			Where("is_active = ?", true).
			Order("user_id"), limit)
	})
}

func (r *poolRepo) UsersWithPlans(ctx context.Context, limit int) ([]biz.UserPlan, error) {
	key := fmt.Sprintf("pool:users:plans:%d", limit)
	return cachedQuery[biz.UserPlan](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&User{}).
			Select("user_id AS id, subscription_plan AS plan").
			Order("user_id"), limit)
	})
}

func (r *poolRepo) ContentRefs(ctx context.Context, limit int) ([]biz.ContentRef, error) {
	key := fmt.Sprintf("pool:content:refs:%d", limit)
	return cachedQuery[biz.ContentRef](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Content{}).
			Select("content_id AS id, duration_minutes").
			Order("content_id"), limit)
	})
}

func (r *poolRepo) TopRatedContent(ctx context.Context, limit int) ([]biz.ContentRef, error) {
	key := fmt.Sprintf("pool:content:top:%d", limit)
	return cachedQuery[biz.ContentRef](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Content{}).
			Select("content_id AS id, duration_minutes").
			Order("imdb_rating DESC"), limit)
	})
}

func (r *poolRepo) ContentIDs(ctx context.Context, limit int) ([]int64, error) {
	key := fmt.Sprintf("pool:content:ids:%d", limit)
	return cachedQuery[int64](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Content{}).
			Select("content_id").
			Order("content_id"), limit)
	})
}

func (r *poolRepo) SearchableContent(ctx context.Context, limit int) ([]biz.ContentSummary, error) {
	key := fmt.Sprintf("pool:content:search:%d", limit)
	return cachedQuery[biz.ContentSummary](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Content{}).
			Select("content_id AS id, title, genre").
			Order("content_id"), limit)
	})
}

func (r *poolRepo) SessionUserIDs(ctx context.Context, limit int) ([]int64, error) {
	key := fmt.Sprintf("pool:viewing_sessions:users:%d", limit)
	return cachedQuery[int64](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&ViewingSession{}).
			Distinct("user_id").
			Order("user_id"), limit)
	})
}

func (r *poolRepo) TVShowIDs(ctx context.Context, limit int) ([]int64, error) {
	key := fmt.Sprintf("pool:content:tvshows:%d", limit)
	return cachedQuery[int64](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Content{}).
			Select("content_id").
			Where("content_type = ?", "tv_show").
			Order("content_id"), limit)
	})
}

func (r *poolRepo) EpisodeRefs(ctx context.Context, limit int) ([]biz.EpisodeRef, error) {
	key := fmt.Sprintf("pool:episodes:refs:%d", limit)
	return cachedQuery[biz.EpisodeRef](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&Episode{}).
			Select("episode_id AS id, duration_minutes").
			Order("episode_id"), limit)
	})
}

func (r *poolRepo) TVShowSessionRefs(ctx context.Context, limit int) ([]biz.SessionRef, error) {
	key := fmt.Sprintf("pool:viewing_sessions:tvshows:%d", limit)
	return cachedQuery[biz.SessionRef](ctx, r, key, func(db *gorm.DB) *gorm.DB {
		return withLimit(db.Model(&ViewingSession{}).
			Select("viewing_sessions.session_id AS id, viewing_sessions.user_id").
			Joins("JOIN content ON content.content_id = viewing_sessions.content_id").
			Where("content.content_type = ?", "tv_show").
			Order("viewing_sessions.session_id"), limit)
	})
}

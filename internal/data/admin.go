package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/streamvision/datagen/internal/biz"
)

type adminRepo struct {
	data *Data
	log  *log.Helper
}

// NewAdminRepo creates the repository backing verification, export snapshots
// and the destructive reset.
func NewAdminRepo(data *Data, logger log.Logger) biz.AdminRepo {
	return &adminRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *adminRepo) count(ctx context.Context, label, query string, args ...any) (biz.TableCount, error) {
	var n int64
	if err := r.data.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error; err != nil {
		return biz.TableCount{}, fmt.Errorf("%w: count %s: %v", biz.ErrConnection, label, err)
	}
	return biz.TableCount{Label: label, Count: n}, nil
}

// RowCounts returns per-table totals plus the active-user and per-type
// content breakdowns.
func (r *adminRepo) RowCounts(ctx context.Context) ([]biz.TableCount, error) {
	counts := make([]biz.TableCount, 0, len(biz.Tables)+4)

	for i := len(biz.Tables) - 1; i >= 0; i-- {
		table := biz.Tables[i]
		c, err := r.count(ctx, table, "SELECT COUNT(*) FROM "+table)
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	extra := []struct {
		label string
		query string
	}{
		{"users (active)", "SELECT COUNT(*) FROM users WHERE is_active"},
		{"content (movies)", "SELECT COUNT(*) FROM content WHERE content_type = 'movie'"},
		{"content (tv shows)", "SELECT COUNT(*) FROM content WHERE content_type = 'tv_show'"},
		{"content (documentaries)", "SELECT COUNT(*) FROM content WHERE content_type = 'documentary'"},
	}
	for _, e := range extra {
		c, err := r.count(ctx, e.label, e.query)
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, nil
}

func (r *adminRepo) TotalWatchSeconds(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := r.data.db.WithContext(ctx).
		Raw("SELECT SUM(duration_seconds) FROM viewing_sessions").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("%w: total watch time: %v", biz.ErrConnection, err)
	}
	return total.Int64, nil
}

func (r *adminRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.data.db.WithContext(ctx).
		Raw("SELECT AVG(rating) FROM ratings").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("%w: average rating: %v", biz.ErrConnection, err)
	}
	return avg.Float64, nil
}

func (r *adminRepo) AverageCompletion(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.data.db.WithContext(ctx).
		Raw("SELECT AVG(completion_rate) FROM viewing_sessions").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("%w: average completion: %v", biz.ErrConnection, err)
	}
	return avg.Float64, nil
}

func (r *adminRepo) PlanBreakdown(ctx context.Context) ([]biz.PlanShare, error) {
	var shares []biz.PlanShare
	err := r.data.db.WithContext(ctx).
		Raw(`SELECT subscription_plan AS plan,
		            COUNT(*) AS count,
		            ROUND(COUNT(*) * 100.0 / NULLIF(SUM(COUNT(*)) OVER (), 0), 1) AS percentage
		     FROM users
		     GROUP BY subscription_plan
		     ORDER BY count DESC`).
		Scan(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("%w: plan breakdown: %v", biz.ErrConnection, err)
	}
	return shares, nil
}

// Snapshot reads a full table as strings for export. Only the known sink
// tables are allowed.
func (r *adminRepo) Snapshot(ctx context.Context, table string) (*biz.TableSnapshot, error) {
	allowed := false
	for _, t := range biz.Tables {
		if t == table {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: unknown table %q", biz.ErrInvalidArgument, table)
	}

	rows, err := r.data.db.WithContext(ctx).
		Raw("SELECT * FROM " + table).Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot %s: %v", biz.ErrConnection, table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot %s: %v", biz.ErrConnection, table, err)
	}

	snapshot := &biz.TableSnapshot{Table: table, Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: snapshot %s: %v", biz.ErrConnection, table, err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		snapshot.Rows = append(snapshot.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: snapshot %s: %v", biz.ErrConnection, table, err)
	}
	return snapshot, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}

// Reset truncates all sink tables in one statement and restarts identity
// counters, then drops any cached pools.
func (r *adminRepo) Reset(ctx context.Context) error {
	stmt := "TRUNCATE " + strings.Join(biz.Tables, ", ") + " RESTART IDENTITY CASCADE"
	if err := r.data.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("%w: truncate: %v", biz.ErrConnection, err)
	}

	if r.data.rdb != nil {
		iter := r.data.rdb.Scan(ctx, 0, "pool:*", 0).Iterator()
		for iter.Next(ctx) {
			r.data.rdb.Del(ctx, iter.Val())
		}
	}

	r.log.Warn("all tables truncated and identities reset")
	return nil
}

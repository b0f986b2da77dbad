package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

type OverviewCounts struct {
	TotalContent      int64
	ContentThisMonth  int64
	TotalPosts        int64
	PublishedPosts    int64
	FailedPosts       int64
	ActiveSchedules   int64
	ConnectedAccounts int64
}

type PlatformCount struct {
	PlatformID int64
	Posts      int64
	Published  int64
	Failed     int64
}

type DailyCount struct {
	Day       time.Time
	Published int64
	Failed    int64
}

type AnalyticsRepository interface {
	Overview(ctx context.Context, userID int64, monthStart time.Time) (*OverviewCounts, error)
	PlatformCounts(ctx context.Context, userID int64) ([]*PlatformCount, error)
	DailyCounts(ctx context.Context, userID int64, since time.Time) ([]*DailyCount, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Overview(ctx context.Context, userID int64, monthStart time.Time) (*OverviewCounts, error) {
	if r.db == nil {
		return &OverviewCounts{}, nil
	}
	query := `
		SELECT
			(SELECT COUNT(*) FROM generated_content WHERE user_id = $1),
			(SELECT COUNT(*) FROM generated_content WHERE user_id = $1 AND created_at >= $2),
			(SELECT COUNT(*) FROM posts WHERE user_id = $1),
			(SELECT COUNT(*) FROM posts WHERE user_id = $1 AND status = 'published'),
			(SELECT COUNT(*) FROM posts WHERE user_id = $1 AND status = 'failed'),
			(SELECT COUNT(*) FROM schedules WHERE user_id = $1 AND is_active),
			(SELECT COUNT(*) FROM connected_accounts WHERE user_id = $1 AND is_active)`

	var o OverviewCounts
	err := r.db.QueryRowContext(ctx, query, userID, monthStart).Scan(&o.TotalContent, &o.ContentThisMonth,
		&o.TotalPosts, &o.PublishedPosts, &o.FailedPosts, &o.ActiveSchedules, &o.ConnectedAccounts)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "analytics overview")
	}
	return &o, nil
}

func (r *analyticsRepository) PlatformCounts(ctx context.Context, userID int64) ([]*PlatformCount, error) {
	if r.db == nil {
		return nil, nil
	}
	query := `
		SELECT platform_id,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM posts
		WHERE user_id = $1
		GROUP BY platform_id
		ORDER BY platform_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "analytics platform counts")
	}
	defer rows.Close()

	var counts []*PlatformCount
	for rows.Next() {
		var c PlatformCount
		if err := rows.Scan(&c.PlatformID, &c.Posts, &c.Published, &c.Failed); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

// DailyCounts returns only days that have posts; callers fill the gaps.
func (r *analyticsRepository) DailyCounts(ctx context.Context, userID int64, since time.Time) ([]*DailyCount, error) {
	if r.db == nil {
		return nil, nil
	}
	query := `
		SELECT date_trunc('day', created_at) AS day,
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM posts
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "analytics daily counts")
	}
	defer rows.Close()

	var counts []*DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Day, &c.Published, &c.Failed); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

package service

import (
	"context"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

const performanceDays = 30

type Overview struct {
	TotalContent      int64   `json:"total_content"`
	ContentThisMonth  int64   `json:"content_this_month"`
	TotalPosts        int64   `json:"total_posts"`
	PublishedPosts    int64   `json:"published_posts"`
	FailedPosts       int64   `json:"failed_posts"`
	SuccessRate       float64 `json:"success_rate"`
	ActiveSchedules   int64   `json:"active_schedules"`
	ConnectedAccounts int64   `json:"connected_accounts"`
}

type PlatformStats struct {
	Platform  string `json:"platform"`
	Posts     int64  `json:"posts"`
	Published int64  `json:"published"`
	Failed    int64  `json:"failed"`
}

type DayStats struct {
	Date      string `json:"date"`
	Published int64  `json:"published"`
	Failed    int64  `json:"failed"`
}

type ContentPlatformStatus struct {
	Platform       string `json:"platform"`
	Status         string `json:"status"`
	PlatformPostID string `json:"platform_post_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

type ContentBreakdown struct {
	ContentID int64                    `json:"content_id"`
	Platforms []*ContentPlatformStatus `json:"platforms"`
}

type AnalyticsService interface {
	Overview(ctx context.Context, userID int64) (*Overview, error)
	Platforms(ctx context.Context, userID int64) ([]*PlatformStats, error)
	Performance(ctx context.Context, userID int64) ([]*DayStats, error)
	Content(ctx context.Context, userID, contentID int64) (*ContentBreakdown, error)
}

type analyticsService struct {
	ar       repository.AnalyticsRepository
	contents repository.GeneratedContentRepository
	posts    repository.PostRepository
	now      func() time.Time
}

func NewAnalyticsService(ar repository.AnalyticsRepository, contents repository.GeneratedContentRepository, posts repository.PostRepository) AnalyticsService {
	return &analyticsService{ar: ar, contents: contents, posts: posts, now: time.Now}
}

func successRate(published, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(published*1000/total) / 10
}

func (s *analyticsService) Overview(ctx context.Context, userID int64) (*Overview, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	c, err := s.ar.Overview(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalContent:      c.TotalContent,
		ContentThisMonth:  c.ContentThisMonth,
		TotalPosts:        c.TotalPosts,
		PublishedPosts:    c.PublishedPosts,
		FailedPosts:       c.FailedPosts,
		SuccessRate:       successRate(c.PublishedPosts, c.TotalPosts),
		ActiveSchedules:   c.ActiveSchedules,
		ConnectedAccounts: c.ConnectedAccounts,
	}, nil
}

func (s *analyticsService) Platforms(ctx context.Context, userID int64) ([]*PlatformStats, error) {
	counts, err := s.ar.PlatformCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := make([]*PlatformStats, 0, len(counts))
	for _, c := range counts {
		stats = append(stats, &PlatformStats{
			Platform:  models.PlatformNames[c.PlatformID],
			Posts:     c.Posts,
			Published: c.Published,
			Failed:    c.Failed,
		})
	}
	return stats, nil
}

// Performance covers the last 30 days including today; days without posts
// are zero.
func (s *analyticsService) Performance(ctx context.Context, userID int64) ([]*DayStats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(performanceDays - 1))

	counts, err := s.ar.DailyCounts(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]*repository.DailyCount, len(counts))
	for _, c := range counts {
		byDay[c.Day.Format(time.DateOnly)] = c
	}

	days := make([]*DayStats, 0, performanceDays)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		day := &DayStats{Date: key}
		if c, ok := byDay[key]; ok {
			day.Published = c.Published
			day.Failed = c.Failed
		}
		days = append(days, day)
	}
	return days, nil
}

func (s *analyticsService) Content(ctx context.Context, userID, contentID int64) (*ContentBreakdown, error) {
	c, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, ErrNotFound
	}

	posts, err := s.posts.ListByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	out := &ContentBreakdown{ContentID: contentID, Platforms: make([]*ContentPlatformStatus, 0, len(posts))}
	for _, p := range posts {
		out.Platforms = append(out.Platforms, &ContentPlatformStatus{
			Platform:       models.PlatformNames[p.PlatformID],
			Status:         p.Status,
			PlatformPostID: p.PlatformPostID,
			Error:          p.ErrorMessage,
		})
	}
	return out, nil
}

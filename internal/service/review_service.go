package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/review"
)

type SiteReviewer interface {
	Run(ctx context.Context, in review.Input) (*review.Report, review.State, error)
}

type ReviewService interface {
	Run(ctx context.Context, quality *review.QualityMetrics) (*review.Report, error)
	Latest(ctx context.Context) (*review.Report, error)
}

type reviewService struct {
	reviewer      SiteReviewer
	reviews       repository.ReviewRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	targetURL     string

	mu    sync.Mutex
	state review.State
}

func NewReviewService(
	reviewer SiteReviewer,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	targetURL string) ReviewService {
	return &reviewService{
		reviewer:      reviewer,
		reviews:       reviews,
		users:         users,
		notifications: notifications,
		targetURL:     targetURL,
	}
}

// Run reviews the configured site, stores the report and warns every admin
// when critical issues were found.
func (s *reviewService) Run(ctx context.Context, quality *review.QualityMetrics) (*review.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, next, err := s.reviewer.Run(ctx, review.Input{
		TargetURL:     s.targetURL,
		Quality:       quality,
		PreviousState: s.state,
	})
	s.state = next
	if err != nil {
		slog.Error("site review failed", "target", s.targetURL, "err", err)
		return nil, err
	}

	if raw, err := json.Marshal(report); err == nil {
		_, err = s.reviews.Save(ctx, &models.ReviewRecord{
			Score:    report.Summary.Score,
			Critical: report.Summary.CriticalIssues,
			Report:   raw,
		})
		if err != nil {
			slog.Warn("review report not stored", "err", err)
		}
	}

	if report.Summary.CriticalIssues > 0 {
		s.notifyAdmins(ctx, report)
	}
	return report, nil
}

func (s *reviewService) notifyAdmins(ctx context.Context, report *review.Report) {
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		slog.Warn("admins not loaded for review alert", "err", err)
		return
	}
	for _, admin := range admins {
		_, err := s.notifications.Create(ctx, &models.Notification{
			UserID:  admin.ID,
			Type:    models.NotificationWarning,
			Title:   report.Title(),
			Message: report.Message(),
		})
		if err != nil {
			slog.Warn("review alert not written", "user_id", admin.ID, "err", err)
		}
	}
}

// Latest prefers the report from this process and falls back to the store.
func (s *reviewService) Latest(ctx context.Context) (*review.Report, error) {
	s.mu.Lock()
	last := s.state.LastReport
	s.mu.Unlock()
	if last != nil {
		return last, nil
	}

	rec, err := s.reviews.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	var report review.Report
	if err := json.Unmarshal(rec.Report, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type TickResult struct {
	Due       int `json:"due"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type SchedulerService interface {
	Tick(ctx context.Context) (*TickResult, error)
	Due(ctx context.Context) ([]*models.Schedule, error)
}

type schedulerService struct {
	schedules     repository.ScheduleRepository
	settings      repository.ContentSettingRepository
	contents      repository.GeneratedContentRepository
	notifications repository.NotificationRepository
	generator     ContentGenerator
	publisher     PublisherService
	now           func() time.Time
}

func NewSchedulerService(
	schedules repository.ScheduleRepository,
	settings repository.ContentSettingRepository,
	contents repository.GeneratedContentRepository,
	notifications repository.NotificationRepository,
	generator ContentGenerator,
	publisher PublisherService,
	now func() time.Time) SchedulerService {
	if now == nil {
		now = time.Now
	}
	return &schedulerService{
		schedules:     schedules,
		settings:      settings,
		contents:      contents,
		notifications: notifications,
		generator:     generator,
		publisher:     publisher,
		now:           now,
	}
}

var errSettingMissing = errors.New("content setting not found")

func (s *schedulerService) Due(ctx context.Context) ([]*models.Schedule, error) {
	return s.schedules.ListDue(ctx, s.now())
}

// Tick runs every due schedule once, in order. A failing schedule is
// reported to its owner and the pass moves on.
func (s *schedulerService) Tick(ctx context.Context) (*TickResult, error) {
	now := s.now()
	due, err := s.schedules.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &TickResult{Due: len(due)}
	for _, sc := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := s.process(ctx, sc, now)
		switch {
		case err == nil:
			result.Processed++
		case errors.Is(err, errSettingMissing):
			slog.Warn("schedule skipped", "schedule_id", sc.ID, "content_setting_id", sc.ContentSettingID)
			result.Skipped++
		default:
			slog.Error("schedule failed", "schedule_id", sc.ID, "user_id", sc.UserID, "err", err)
			result.Failed++
			s.reportFailure(ctx, sc, err)
		}
	}

	slog.Info("scheduler tick done", "due", result.Due, "processed", result.Processed,
		"skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (s *schedulerService) process(ctx context.Context, sc *models.Schedule, now time.Time) error {
	setting, err := s.settings.GetByID(ctx, sc.ContentSettingID)
	if err != nil {
		return err
	}
	if setting == nil {
		return errSettingMissing
	}

	generated, err := s.generator.GenerateFull(ctx, setting.Topic, setting, true)
	if err != nil {
		return err
	}

	scheduleID := sc.ID
	content := &models.GeneratedContent{
		UserID:       sc.UserID,
		ScheduleID:   &scheduleID,
		ContentText:  generated.Text,
		ImageURL:     generated.ImageURL,
		ImageKey:     generated.ImageKey,
		ContentType:  models.ContentTypeText,
		Status:       models.ContentStatusScheduled,
		ScheduledFor: &now,
	}
	if generated.ImageURL != "" {
		content.ContentType = models.ContentTypeImage
	}

	id, err := s.contents.Create(ctx, nil, content)
	if err != nil {
		return err
	}
	content.ID = id

	summary, err := s.publisher.PublishToAllPlatforms(ctx, sc.UserID, content)
	if summary == nil {
		return err
	}
	if err != nil {
		// Platforms were already called; running again would post twice.
		slog.Error("publish results partly unrecorded", "schedule_id", sc.ID, "content_id", content.ID, "err", err)
	}

	if sc.ScheduleType == models.ScheduleOnce {
		return s.schedules.Deactivate(ctx, sc.ID)
	}

	next, err := NextRunTime(sc, now)
	if err != nil {
		return err
	}
	return s.schedules.SetNextRun(ctx, sc.ID, next)
}

func (s *schedulerService) reportFailure(ctx context.Context, sc *models.Schedule, cause error) {
	_, err := s.notifications.Create(ctx, &models.Notification{
		UserID:  sc.UserID,
		Type:    models.NotificationFailure,
		Title:   "Scheduling error",
		Message: fmt.Sprintf("Error processing schedule: %v", cause),
	})
	if err != nil {
		slog.Error("failure notification not written", "schedule_id", sc.ID, "err", err)
	}
}

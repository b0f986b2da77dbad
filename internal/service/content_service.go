package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

// PublishEnqueuer defers publishing of a content row until at.
type PublishEnqueuer interface {
	EnqueuePublish(ctx context.Context, contentID, userID int64, at time.Time) (string, error)
}

type ContentService interface {
	List(ctx context.Context, userID int64) ([]*models.GeneratedContent, error)
	Get(ctx context.Context, userID, id int64) (*models.GeneratedContent, error)
	Create(ctx context.Context, userID int64, req *transfer.ContentRequest) (*models.GeneratedContent, error)
	UpdateStatus(ctx context.Context, userID, id int64, status string) error
	Publish(ctx context.Context, userID, id int64) (*transfer.PublishResponse, error)
	Enhance(ctx context.Context, userID, id, settingID int64) (*models.GeneratedContent, error)
	Preview(ctx context.Context, req *transfer.ContentSettingRequest) (string, error)
	ListPosts(ctx context.Context, userID int64) ([]*models.Post, error)
}

type contentService struct {
	contents  repository.GeneratedContentRepository
	posts     repository.PostRepository
	settings  repository.ContentSettingRepository
	generator ContentGenerator
	queue     PublishEnqueuer
	now       func() time.Time
}

func NewContentService(
	contents repository.GeneratedContentRepository,
	posts repository.PostRepository,
	settings repository.ContentSettingRepository,
	generator ContentGenerator,
	queue PublishEnqueuer) ContentService {
	return &contentService{
		contents:  contents,
		posts:     posts,
		settings:  settings,
		generator: generator,
		queue:     queue,
		now:       time.Now,
	}
}

func (s *contentService) List(ctx context.Context, userID int64) ([]*models.GeneratedContent, error) {
	return s.contents.ListByUser(ctx, userID)
}

func (s *contentService) Get(ctx context.Context, userID, id int64) (*models.GeneratedContent, error) {
	c, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *contentService) Create(ctx context.Context, userID int64, req *transfer.ContentRequest) (*models.GeneratedContent, error) {
	c := &models.GeneratedContent{
		UserID:       userID,
		ScheduleID:   req.ScheduleID,
		ContentText:  req.ContentText,
		ImageURL:     req.ImageURL,
		ContentType:  req.ContentType,
		Status:       models.ContentStatusDraft,
		ScheduledFor: req.ScheduledFor,
	}
	if c.ContentType == "" {
		c.ContentType = models.ContentTypeText
	}

	id, err := s.contents.Create(ctx, nil, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

func (s *contentService) UpdateStatus(ctx context.Context, userID, id int64, status string) error {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(c.Status, status) {
		return invalid("cannot move content from %s to %s", c.Status, status)
	}
	return s.contents.UpdateStatus(ctx, id, status)
}

// Publish queues the content for its scheduled time, or right away when the
// time is unset or already past.
func (s *contentService) Publish(ctx context.Context, userID, id int64) (*transfer.PublishResponse, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(c.Status, models.ContentStatusScheduled) {
		return nil, invalid("content %d is already %s", id, c.Status)
	}
	if s.queue == nil {
		return nil, fmt.Errorf("publish queue not configured")
	}

	at := s.now()
	if c.ScheduledFor != nil && c.ScheduledFor.After(at) {
		at = *c.ScheduledFor
	}

	taskID, err := s.queue.EnqueuePublish(ctx, c.ID, userID, at)
	if err != nil {
		slog.Error("enqueue publish failed", "content_id", c.ID, "err", err)
		return nil, err
	}
	if err := s.contents.UpdateStatus(ctx, c.ID, models.ContentStatusScheduled); err != nil {
		return nil, err
	}
	return &transfer.PublishResponse{TaskID: taskID, ScheduledFor: at}, nil
}

func (s *contentService) Enhance(ctx context.Context, userID, id, settingID int64) (*models.GeneratedContent, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	setting, err := s.settings.GetByID(ctx, settingID)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.UserID != userID {
		return nil, fmt.Errorf("content setting %d: %w", settingID, ErrNotFound)
	}

	text, err := s.generator.Enhance(ctx, c.ContentText, setting)
	if err != nil {
		return nil, err
	}
	if err := s.contents.UpdateText(ctx, c.ID, text); err != nil {
		return nil, err
	}
	c.ContentText = text
	return c, nil
}

func (s *contentService) Preview(ctx context.Context, req *transfer.ContentSettingRequest) (string, error) {
	setting, err := SettingFromRequest(req)
	if err != nil {
		return "", err
	}
	return s.generator.Preview(ctx, setting), nil
}

func (s *contentService) ListPosts(ctx context.Context, userID int64) ([]*models.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

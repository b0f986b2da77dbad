package queue

import (
	"context"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
)

const TaskTypePublishContent = "content:publish"

type PublishContentPayload struct {
	ContentID int64 `json:"content_id"`
	UserID    int64 `json:"user_id"`
}

// ContentPublisher is the part of the publisher service the worker drives.
type ContentPublisher interface {
	PublishToAllPlatforms(ctx context.Context, userID int64, content *models.GeneratedContent) (*service.PublishSummary, error)
}

type Queue struct {
	contents  repository.GeneratedContentRepository
	publisher ContentPublisher
}

func NewQueue(contents repository.GeneratedContentRepository, publisher ContentPublisher) *Queue {
	return &Queue{
		contents:  contents,
		publisher: publisher,
	}
}

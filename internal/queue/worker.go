package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/autopost/internal/models"
)

func (q *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypePublishContent, q.HandlePublishContentTask)
}

// HandlePublishContentTask publishes one content row. Tasks that can never
// succeed are not retried, and a content row that has already reached a
// final status is left alone.
func (q *Queue) HandlePublishContentTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishContentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode publish payload: %v: %w", err, asynq.SkipRetry)
	}

	content, err := q.contents.GetByID(ctx, payload.ContentID)
	if err != nil {
		return err
	}
	if content == nil || content.UserID != payload.UserID {
		return fmt.Errorf("content %d for user %d not found: %w", payload.ContentID, payload.UserID, asynq.SkipRetry)
	}
	if !models.CanTransition(content.Status, models.ContentStatusPublished) {
		slog.Info("content already processed", "content_id", content.ID, "status", content.Status)
		return nil
	}

	summary, err := q.publisher.PublishToAllPlatforms(ctx, payload.UserID, content)
	if summary == nil {
		// Nothing was attempted, so a retry cannot double post.
		return err
	}
	if err != nil {
		slog.Error("publish results partly unrecorded", "content_id", content.ID, "err", err)
	}

	slog.Info("content published", "content_id", content.ID, "status", summary.Status,
		"succeeded", summary.Succeeded, "attempted", summary.Attempted)
	return nil
}

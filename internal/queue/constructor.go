package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const publishMaxRetry = 3

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client schedules publish tasks on Redis.
type Client struct {
	enqueuer TaskEnqueuer
}

func NewClient(enqueuer TaskEnqueuer) *Client {
	return &Client{enqueuer: enqueuer}
}

func NewPublishTask(contentID, userID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishContentPayload{ContentID: contentID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePublishContent, payload), nil
}

// EnqueuePublish runs the publish task at the given time; a time in the past
// runs it as soon as a worker is free.
func (c *Client) EnqueuePublish(ctx context.Context, contentID, userID int64, at time.Time) (string, error) {
	task, err := NewPublishTask(contentID, userID)
	if err != nil {
		return "", err
	}

	info, err := c.enqueuer.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.MaxRetry(publishMaxRetry))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	slog.Info("publish task scheduled", "task_id", info.ID, "content_id", contentID, "at", at)
	return info.ID, nil
}

package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository/memstore"
	"github.com/maheshrc27/autopost/internal/service"
)

type recordingEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.task, r.opts = task, opts
	return &asynq.TaskInfo{ID: "task-42", Type: task.Type()}, nil
}

func TestEnqueuePublish(t *testing.T) {
	rec := &recordingEnqueuer{}
	when := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	id, err := NewClient(rec).EnqueuePublish(context.Background(), 5, 9, when)
	if err != nil {
		t.Fatal(err)
	}
	if id != "task-42" || rec.task.Type() != TaskTypePublishContent {
		t.Fatalf("id %q, task %s", id, rec.task.Type())
	}

	var payload PublishContentPayload
	if err := json.Unmarshal(rec.task.Payload(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.ContentID != 5 || payload.UserID != 9 {
		t.Fatalf("payload = %+v", payload)
	}

	var processAt time.Time
	for _, opt := range rec.opts {
		if opt.Type() == asynq.ProcessAtOpt {
			processAt, _ = opt.Value().(time.Time)
		}
	}
	if !processAt.Equal(when) {
		t.Fatalf("process at = %s, want %s", processAt, when)
	}
}

func TestEnqueuePublishError(t *testing.T) {
	_, err := NewClient(&recordingEnqueuer{err: errors.New("redis down")}).EnqueuePublish(context.Background(), 1, 1, time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
}

func newWorker(t *testing.T) (*memstore.Store, *Queue, int64) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	registry := platform.NewRegistryWith(map[int64]platform.Publisher{
		models.PlatformFacebook: platform.NewStub("facebook", false),
	})
	publisher := service.NewPublisherService(store.Accounts, store.Posts, store.Notifications, store.Contents,
		store.Team, store.Users, registry, "")

	userID, _ := store.Users.Upsert(ctx, &models.User{OpenID: "u"})
	if _, err := store.Accounts.Create(ctx, nil, &models.ConnectedAccount{
		UserID: userID, PlatformID: models.PlatformFacebook, AccountID: "page", AccessToken: "tok", IsActive: true,
	}); err != nil {
		t.Fatal(err)
	}
	return store, NewQueue(store.Contents, publisher), userID
}

func TestHandlePublishContentTask(t *testing.T) {
	ctx := context.Background()
	store, q, userID := newWorker(t)
	contentID, _ := store.Contents.Create(ctx, nil, &models.GeneratedContent{
		UserID: userID, ContentText: "hello", Status: models.ContentStatusScheduled,
	})

	task, err := NewPublishTask(contentID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if err := q.HandlePublishContentTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	content, _ := store.Contents.GetByID(ctx, contentID)
	if content.Status != models.ContentStatusPublished {
		t.Fatalf("status = %s", content.Status)
	}
	posts, _ := store.Posts.ListByContent(ctx, contentID)
	if len(posts) != 1 {
		t.Fatalf("%d posts", len(posts))
	}

	// A redelivered task does not publish twice.
	if err := q.HandlePublishContentTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	posts, _ = store.Posts.ListByContent(ctx, contentID)
	if len(posts) != 1 {
		t.Fatalf("%d posts after redelivery", len(posts))
	}
}

func TestHandlePublishContentTaskSkipsRetry(t *testing.T) {
	ctx := context.Background()
	store, q, userID := newWorker(t)
	contentID, _ := store.Contents.Create(ctx, nil, &models.GeneratedContent{UserID: userID, Status: models.ContentStatusDraft})

	cases := map[string]*asynq.Task{
		"bad payload":   asynq.NewTask(TaskTypePublishContent, []byte("{")),
		"missing":       mustTask(t, 999, userID),
		"foreign owner": mustTask(t, contentID, userID+1),
	}
	for name, task := range cases {
		if err := q.HandlePublishContentTask(ctx, task); !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("%s: err = %v, want SkipRetry", name, err)
		}
	}
}

func mustTask(t *testing.T, contentID, userID int64) *asynq.Task {
	t.Helper()
	task, err := NewPublishTask(contentID, userID)
	if err != nil {
		t.Fatal(err)
	}
	return task
}

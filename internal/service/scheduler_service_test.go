package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type schedulerFixture struct {
	*publishFixture
	llm       *fakeLLM
	scheduler SchedulerService
	now       time.Time
}

func newSchedulerFixture(t *testing.T, llm *fakeLLM) *schedulerFixture {
	f := &schedulerFixture{
		publishFixture: newPublishFixture(t),
		llm:            llm,
		now:            at("2025-03-10 10:00"),
	}
	gen := NewContentGenerator(llm, &fakeImages{genErr: errors.New("no images today")}, &fakeBlobs{}, 1)
	f.scheduler = NewSchedulerService(f.store.Schedules, f.store.Settings, f.store.Contents, f.store.Notifications,
		gen, f.publisher, func() time.Time { return f.now })
	return f
}

func (f *schedulerFixture) schedule(t *testing.T, kind string, settingID int64, next time.Time) int64 {
	t.Helper()
	id, err := f.store.Schedules.Create(context.Background(), nil, &models.Schedule{
		UserID:           f.userID,
		ContentSettingID: settingID,
		ScheduleType:     kind,
		ScheduleTime:     "09:00",
		IsActive:         true,
		NextRunAt:        &next,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (f *schedulerFixture) setting(t *testing.T) int64 {
	t.Helper()
	st := testSetting()
	st.UserID = f.userID
	id, err := f.store.Settings.Create(context.Background(), nil, st)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestTickGeneratesPublishesAndAdvances(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{text: "morning coffee post"})
	f.connect(t, models.PlatformFacebook, "fb-1", "tok")
	f.connect(t, models.PlatformTikTok, "tt-1", "tok")
	id := f.schedule(t, models.ScheduleDaily, f.setting(t), f.now.Add(-time.Hour))

	res, err := f.scheduler.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Due != 1 || res.Processed != 1 || res.Failed != 0 {
		t.Fatalf("tick = %+v", res)
	}
	if f.llm.calls != 1 {
		t.Fatalf("llm called %d times", f.llm.calls)
	}

	contents, _ := f.store.Contents.ListByUser(ctx, f.userID)
	if len(contents) != 1 {
		t.Fatalf("%d contents, want 1", len(contents))
	}
	c := contents[0]
	if c.ContentText != "morning coffee post" || c.ScheduleID == nil || *c.ScheduleID != id {
		t.Fatalf("content = %+v", c)
	}
	if c.ContentType != models.ContentTypeText || c.ImageURL != "" {
		t.Fatalf("image failure should leave a text post, got %+v", c)
	}
	if c.Status != models.ContentStatusPublished {
		t.Fatalf("content status = %s", c.Status)
	}

	posts, _ := f.store.Posts.ListByContent(ctx, c.ID)
	if len(posts) != 2 {
		t.Fatalf("%d posts, want one per account", len(posts))
	}

	sc, _ := f.store.Schedules.GetByID(ctx, id)
	if sc.NextRunAt == nil || !sc.NextRunAt.Equal(at("2025-03-11 09:00")) {
		t.Fatalf("next run = %v", sc.NextRunAt)
	}

	// Nothing is due until tomorrow.
	res, err = f.scheduler.Tick(ctx)
	if err != nil || res.Due != 0 {
		t.Fatalf("second tick = %+v, %v", res, err)
	}
}

func TestTickDeactivatesOnceSchedules(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{text: "one-off"})
	id := f.schedule(t, models.ScheduleOnce, f.setting(t), f.now.Add(-time.Minute))

	if _, err := f.scheduler.Tick(ctx); err != nil {
		t.Fatal(err)
	}
	sc, _ := f.store.Schedules.GetByID(ctx, id)
	if sc.IsActive {
		t.Fatal("once schedule still active after running")
	}
}

func TestTickReportsFailureAndContinues(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{err: errors.New("model overloaded")})
	due := f.now.Add(-time.Hour)
	id := f.schedule(t, models.ScheduleDaily, f.setting(t), due)
	f.schedule(t, models.ScheduleDaily, f.setting(t), due)

	res, err := f.scheduler.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Due != 2 || res.Failed != 2 || res.Processed != 0 {
		t.Fatalf("tick = %+v", res)
	}

	notes, _ := f.store.Notifications.ListByUser(ctx, f.userID)
	if len(notes) != 2 {
		t.Fatalf("%d notifications, want one per failed schedule", len(notes))
	}
	for _, n := range notes {
		if n.Type != models.NotificationFailure || n.Title != "Scheduling error" ||
			!strings.HasPrefix(n.Message, "Error processing schedule: ") {
			t.Fatalf("notification = %+v", n)
		}
	}

	sc, _ := f.store.Schedules.GetByID(ctx, id)
	if !sc.NextRunAt.Equal(due) {
		t.Fatalf("failed schedule moved to %s", sc.NextRunAt)
	}
	contents, _ := f.store.Contents.ListByUser(ctx, f.userID)
	if len(contents) != 0 {
		t.Fatalf("%d contents written for failed generation", len(contents))
	}
}

func TestTickSkipsScheduleWithoutSetting(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{text: "x"})
	due := f.now.Add(-time.Hour)
	id := f.schedule(t, models.ScheduleDaily, 999, due)

	res, err := f.scheduler.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 1 || f.llm.calls != 0 {
		t.Fatalf("tick = %+v, llm calls %d", res, f.llm.calls)
	}
	sc, _ := f.store.Schedules.GetByID(ctx, id)
	if !sc.NextRunAt.Equal(due) {
		t.Fatalf("skipped schedule moved to %s", sc.NextRunAt)
	}
}

func TestDueIgnoresInactiveAndFutureSchedules(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{text: "x"})
	st := f.setting(t)
	f.schedule(t, models.ScheduleDaily, st, f.now.Add(time.Hour))
	paused := f.schedule(t, models.ScheduleDaily, st, f.now.Add(-time.Hour))
	if err := f.store.Schedules.Deactivate(ctx, paused); err != nil {
		t.Fatal(err)
	}
	ready := f.schedule(t, models.ScheduleDaily, st, f.now)

	due, err := f.scheduler.Due(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 || due[0].ID != ready {
		t.Fatalf("due = %+v", due)
	}
}

// postNotificationsDown fails every notification tied to a post row.
type postNotificationsDown struct {
	repository.NotificationRepository
}

func (r postNotificationsDown) Create(ctx context.Context, n *models.Notification) (int64, error) {
	if n.PostID != nil {
		return 0, errors.New("notifications table locked")
	}
	return r.NotificationRepository.Create(ctx, n)
}

func TestTickDoesNotRepostAfterUnrecordedResults(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t, &fakeLLM{text: "one-off"})
	f.connect(t, models.PlatformFacebook, "fb-1", "tok")

	publisher := NewPublisherService(f.store.Accounts, f.store.Posts, postNotificationsDown{f.store.Notifications},
		f.store.Contents, f.store.Team, f.store.Users, f.registry, testKey)
	gen := NewContentGenerator(f.llm, nil, nil, 1)
	scheduler := NewSchedulerService(f.store.Schedules, f.store.Settings, f.store.Contents, f.store.Notifications,
		gen, publisher, func() time.Time { return f.now })

	setting := f.setting(t)
	once := f.schedule(t, models.ScheduleOnce, setting, f.now.Add(-time.Minute))
	daily := f.schedule(t, models.ScheduleDaily, setting, f.now.Add(-time.Minute))

	for i := 0; i < 3; i++ {
		res, err := scheduler.Tick(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 && (res.Due != 2 || res.Processed != 2 || res.Failed != 0) {
			t.Fatalf("first tick = %+v", res)
		}
		if i > 0 && res.Due != 0 {
			t.Fatalf("tick %d = %+v, want nothing due", i, res)
		}
	}

	if n := len(f.facebook.calls()); n != 2 {
		t.Fatalf("facebook called %d times, want once per schedule", n)
	}
	if sc, _ := f.store.Schedules.GetByID(ctx, once); sc.IsActive {
		t.Fatal("once schedule still active")
	}
	if sc, _ := f.store.Schedules.GetByID(ctx, daily); sc.NextRunAt == nil || !sc.NextRunAt.Equal(at("2025-03-11 09:00")) {
		t.Fatalf("daily next run = %v", sc.NextRunAt)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository/memstore"
	"github.com/maheshrc27/autopost/internal/review"
	"github.com/maheshrc27/autopost/internal/transfer"
)

func boolPtr(b bool) *bool { return &b }

func TestConnectRejectsDuplicatesAndUnknownPlatforms(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	f.connect(t, models.PlatformFacebook, "fb-1", "tok")

	_, err := f.accounts.Connect(ctx, f.userID, &transfer.ConnectAccountRequest{
		PlatformID: models.PlatformFacebook, AccountID: "fb-1", AccessToken: "other",
	})
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("duplicate connect err = %v", err)
	}

	_, err = f.accounts.Connect(ctx, f.userID, &transfer.ConnectAccountRequest{
		PlatformID: 9, AccountID: "x", AccessToken: "tok",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown platform err = %v", err)
	}

	activity, _ := f.store.Team.ListActivity(ctx, f.userID, 10)
	if len(activity) != 1 || activity[0].Actor != "Sara" {
		t.Fatalf("activity = %+v", activity)
	}
}

func TestAccountOwnership(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	acc := f.connect(t, models.PlatformFacebook, "fb-1", "tok")

	if err := f.accounts.Disconnect(ctx, f.userID+1, acc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign disconnect err = %v", err)
	}
	if err := f.accounts.SetStatus(ctx, f.userID+1, acc.ID, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign status err = %v", err)
	}
}

func TestTestConnectionWritesNotification(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	ok := f.connect(t, models.PlatformFacebook, "fb-1", "tok")
	bad := f.connect(t, models.PlatformTikTok, "tt-1", "tok")
	f.tiktok.verifyErr = errors.New("invalid token")

	resp, err := f.accounts.TestConnection(ctx, f.userID, ok.ID)
	if err != nil || !resp.OK {
		t.Fatalf("facebook test = %+v, %v", resp, err)
	}
	resp, err = f.accounts.TestConnection(ctx, f.userID, bad.ID)
	if err != nil || resp.OK || resp.Message != "invalid token" {
		t.Fatalf("tiktok test = %+v, %v", resp, err)
	}

	notes, _ := f.store.Notifications.ListByUser(ctx, f.userID)
	if len(notes) != 2 {
		t.Fatalf("%d notifications", len(notes))
	}
	types := map[string]bool{}
	for _, n := range notes {
		types[n.Type] = true
	}
	if !types[models.NotificationInfo] || !types[models.NotificationWarning] {
		t.Fatalf("notification types = %v", types)
	}
}

func TestListPlatformsWithoutRepository(t *testing.T) {
	svc := NewAccountService(nil, memstore.New().Accounts, nil, nil, nil, nil, "")
	list, err := svc.ListPlatforms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 5 || list[0].Name != "facebook" || list[4].Name != "blogger" {
		t.Fatalf("platforms = %+v", list)
	}
}

func newScheduleFixture(t *testing.T) (*memstore.Store, *scheduleService, int64) {
	t.Helper()
	store := memstore.New()
	settingID, err := store.Settings.Create(context.Background(), nil, &models.ContentSetting{UserID: 1, Topic: "tea"})
	if err != nil {
		t.Fatal(err)
	}
	svc := NewScheduleService(store.Schedules, store.Settings, store.Team, store.Users).(*scheduleService)
	svc.now = func() time.Time { return at("2025-03-10 10:00") }
	return store, svc, settingID
}

func TestCreateScheduleComputesNextRun(t *testing.T) {
	ctx := context.Background()
	_, svc, settingID := newScheduleFixture(t)

	sc, err := svc.Create(ctx, 1, &transfer.ScheduleRequest{
		ContentSettingID: settingID, ScheduleType: models.ScheduleWeekly, ScheduleTime: "08:15", ScheduleDays: []int{3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sc.ScheduleDays != "[3]" || !sc.IsActive {
		t.Fatalf("schedule = %+v", sc)
	}
	if !sc.NextRunAt.Equal(at("2025-03-12 08:15")) {
		t.Fatalf("next run = %s", sc.NextRunAt)
	}

	_, err = svc.Create(ctx, 1, &transfer.ScheduleRequest{
		ContentSettingID: settingID, ScheduleType: models.ScheduleWeekly, ScheduleTime: "08:15",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("weekly without days err = %v", err)
	}

	_, err = svc.Create(ctx, 2, &transfer.ScheduleRequest{
		ContentSettingID: settingID, ScheduleType: models.ScheduleDaily, ScheduleTime: "08:15",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign setting err = %v", err)
	}
}

func TestUpdateScheduleRetimes(t *testing.T) {
	ctx := context.Background()
	store, svc, settingID := newScheduleFixture(t)
	sc, err := svc.Create(ctx, 1, &transfer.ScheduleRequest{
		ContentSettingID: settingID, ScheduleType: models.ScheduleDaily, ScheduleTime: "11:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !sc.NextRunAt.Equal(at("2025-03-10 11:00")) {
		t.Fatalf("next run = %s", sc.NextRunAt)
	}

	newTime := "07:30"
	sc, err = svc.Update(ctx, 1, sc.ID, &transfer.ScheduleUpdateRequest{ScheduleTime: &newTime})
	if err != nil {
		t.Fatal(err)
	}
	if !sc.NextRunAt.Equal(at("2025-03-11 07:30")) {
		t.Fatalf("next run after retime = %s", sc.NextRunAt)
	}

	stored, _ := store.Schedules.GetByID(ctx, sc.ID)
	if stored.ScheduleTime != "07:30" {
		t.Fatalf("stored time = %s", stored.ScheduleTime)
	}

	if _, err := svc.Update(ctx, 2, sc.ID, &transfer.ScheduleUpdateRequest{IsActive: boolPtr(false)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign update err = %v", err)
	}
}

type fakeQueue struct {
	contentID, userID int64
	at                time.Time
}

func (q *fakeQueue) EnqueuePublish(_ context.Context, contentID, userID int64, at time.Time) (string, error) {
	q.contentID, q.userID, q.at = contentID, userID, at
	return "task-1", nil
}

func TestContentPublishEnqueues(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	queue := &fakeQueue{}
	svc := NewContentService(store.Contents, store.Posts, store.Settings, nil, queue).(*contentService)
	now := at("2025-03-10 10:00")
	svc.now = func() time.Time { return now }

	later := now.Add(2 * time.Hour)
	c, err := svc.Create(ctx, 1, &transfer.ContentRequest{ContentText: "hi", ScheduledFor: &later})
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != models.ContentStatusDraft || c.ContentType != models.ContentTypeText {
		t.Fatalf("created = %+v", c)
	}

	resp, err := svc.Publish(ctx, 1, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TaskID != "task-1" || !resp.ScheduledFor.Equal(later) || queue.contentID != c.ID || queue.userID != 1 {
		t.Fatalf("resp = %+v, queue = %+v", resp, queue)
	}
	stored, _ := store.Contents.GetByID(ctx, c.ID)
	if stored.Status != models.ContentStatusScheduled {
		t.Fatalf("status = %s", stored.Status)
	}

	if _, err := svc.Publish(ctx, 2, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign publish err = %v", err)
	}

	if err := store.Contents.UpdateStatus(ctx, c.ID, models.ContentStatusPublished); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Publish(ctx, 1, c.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("republish err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, 1, c.ID, models.ContentStatusDraft); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("published -> draft err = %v", err)
	}
}

func TestContentEnhance(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	gen := NewContentGenerator(&fakeLLM{text: "shinier"}, nil, nil, 1)
	svc := NewContentService(store.Contents, store.Posts, store.Settings, gen, nil)

	c, err := svc.Create(ctx, 1, &transfer.ContentRequest{ContentText: "plain"})
	if err != nil {
		t.Fatal(err)
	}
	settingID, _ := store.Settings.Create(ctx, nil, &models.ContentSetting{UserID: 1, Topic: "tea"})

	out, err := svc.Enhance(ctx, 1, c.ID, settingID)
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := store.Contents.GetByID(ctx, c.ID)
	if out.ContentText != "shinier" || stored.ContentText != "shinier" {
		t.Fatalf("enhanced = %q, stored = %q", out.ContentText, stored.ContentText)
	}
}

func TestSettingFromRequestDefaults(t *testing.T) {
	st, err := SettingFromRequest(&transfer.ContentSettingRequest{Topic: "tea", ContentStyle: "short", Tone: "calm"})
	if err != nil {
		t.Fatal(err)
	}
	if st.Language != "ar" || st.MaxPostLength != 280 || !st.IncludeHashtags || !st.IncludeEmojis {
		t.Fatalf("defaults = %+v", st)
	}

	st, err = SettingFromRequest(&transfer.ContentSettingRequest{
		Topic: "tea", ContentStyle: "short", Tone: "calm", Language: "en",
		IncludeEmojis: boolPtr(false), MaxPostLength: 500,
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.Language != "en" || st.MaxPostLength != 500 || !st.IncludeHashtags || st.IncludeEmojis {
		t.Fatalf("explicit = %+v", st)
	}
}

func TestSettingFromRequestReportsCopyFailure(t *testing.T) {
	if st, err := SettingFromRequest(nil); err == nil || st != nil {
		t.Fatalf("nil request = %+v, %v", st, err)
	}

	store := memstore.New()
	if _, err := NewSettingsService(store.Settings).Create(context.Background(), 1, nil); err == nil {
		t.Fatal("create accepted a nil request")
	}
	if list, _ := store.Settings.ListByUser(context.Background(), 1); len(list) != 0 {
		t.Fatalf("%d settings stored", len(list))
	}
}

func TestTeamInvite(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	owner, _ := store.Users.Upsert(ctx, &models.User{OpenID: "o", Name: "Owner", Email: "owner@example.com"})
	svc := NewTeamService(store.Team, store.Users)

	m, err := svc.Invite(ctx, owner, &transfer.InviteRequest{Email: " Lina@Example.com ", Role: models.TeamRoleEditor})
	if err != nil {
		t.Fatal(err)
	}
	if m.Email != "lina@example.com" || m.Name != "lina" || m.Status != models.MemberStatusInvited || m.InviteToken == "" {
		t.Fatalf("member = %+v", m)
	}

	if _, err := svc.Invite(ctx, owner, &transfer.InviteRequest{Email: "lina@example.com", Role: models.TeamRoleAdmin}); !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("duplicate invite err = %v", err)
	}

	members, err := svc.Members(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].Email != "owner@example.com" {
		t.Fatalf("members = %+v", members)
	}

	if err := svc.UpdateRole(ctx, owner+1, m.ID, models.TeamRoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign role change err = %v", err)
	}
	if err := svc.Remove(ctx, owner, m.ID); err != nil {
		t.Fatal(err)
	}

	activity, _ := svc.Activity(ctx, owner)
	if len(activity) != 2 {
		t.Fatalf("activity = %+v", activity)
	}
}

func TestCampaignDates(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewCampaignService(store.Campaigns, store.Team, store.Users)
	start := at("2025-03-10 00:00")

	_, err := svc.Create(ctx, 1, &transfer.CampaignRequest{Name: "spring", Topic: "tea", StartDate: start, EndDate: start.Add(-time.Hour)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}

	c, err := svc.Create(ctx, 1, &transfer.CampaignRequest{Name: "spring", Topic: "tea", StartDate: start, EndDate: start.AddDate(0, 1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsActive {
		t.Fatal("campaign should default to active")
	}
	if _, err := svc.Get(ctx, 2, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign get err = %v", err)
	}
}

func TestNotificationOwnership(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	id, _ := store.Notifications.Create(ctx, &models.Notification{UserID: 1, Title: "hi"})
	svc := NewNotificationService(store.Notifications)

	if err := svc.MarkRead(ctx, 2, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign mark read err = %v", err)
	}
	if err := svc.MarkRead(ctx, 1, id); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, 1, id); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, 1, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

type fakeReviewer struct {
	report *review.Report
	err    error
	seen   []review.State
}

func (r *fakeReviewer) Run(_ context.Context, in review.Input) (*review.Report, review.State, error) {
	r.seen = append(r.seen, in.PreviousState)
	if r.err != nil {
		return nil, in.PreviousState, r.err
	}
	return r.report, review.State{LastReport: r.report, Runs: in.PreviousState.Runs + 1}, nil
}

func TestReviewNotifiesAdminsOnCriticalIssues(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	admin, _ := store.Users.Upsert(ctx, &models.User{OpenID: "a", Role: models.RoleAdmin})
	user, _ := store.Users.Upsert(ctx, &models.User{OpenID: "u"})

	report := &review.Report{TargetURL: "https://site.test"}
	report.Checks.Security = review.CheckResult{Status: review.StatusFail, Issues: []string{"a", "b", "c"}}
	review.Summarize(report)

	reviewer := &fakeReviewer{report: report}
	svc := NewReviewService(reviewer, store.Reviews, store.Users, store.Notifications, "https://site.test")

	if _, err := svc.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if len(reviewer.seen) != 2 || reviewer.seen[1].Runs != 1 {
		t.Fatalf("state not carried: %+v", reviewer.seen)
	}

	adminNotes, _ := store.Notifications.ListByUser(ctx, admin)
	userNotes, _ := store.Notifications.ListByUser(ctx, user)
	if len(adminNotes) != 2 || len(userNotes) != 0 {
		t.Fatalf("admin got %d, user got %d notifications", len(adminNotes), len(userNotes))
	}
	if adminNotes[0].Type != models.NotificationWarning {
		t.Fatalf("notification = %+v", adminNotes[0])
	}

	latest, err := svc.Latest(ctx)
	if err != nil || latest.Summary.CriticalIssues != 3 {
		t.Fatalf("latest = %+v, %v", latest, err)
	}

	// A fresh service reads the stored report.
	fresh := NewReviewService(reviewer, store.Reviews, store.Users, store.Notifications, "https://site.test")
	stored, err := fresh.Latest(ctx)
	if err != nil || stored.Summary.Score != report.Summary.Score {
		t.Fatalf("stored latest = %+v, %v", stored, err)
	}
}

func TestReviewLatestWithoutRuns(t *testing.T) {
	store := memstore.New()
	svc := NewReviewService(&fakeReviewer{}, store.Reviews, store.Users, store.Notifications, "")
	if _, err := svc.Latest(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

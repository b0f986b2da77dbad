package service

import (
	"context"
	"strings"
	"testing"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository/memstore"
	"github.com/maheshrc27/autopost/internal/transfer"
)

const testKey = "0123456789abcdef0123456789abcdef"

type publishFixture struct {
	store     *memstore.Store
	facebook  *fakePublisher
	tiktok    *fakePublisher
	registry  *platform.Registry
	accounts  AccountService
	publisher PublisherService
	userID    int64
}

func newPublishFixture(t *testing.T) *publishFixture {
	t.Helper()
	ctx := context.Background()
	f := &publishFixture{
		store:    memstore.New(),
		facebook: &fakePublisher{name: "facebook"},
		tiktok:   &fakePublisher{name: "tiktok", failWith: "token expired"},
	}
	f.registry = platform.NewRegistryWith(map[int64]platform.Publisher{
		models.PlatformFacebook: f.facebook,
		models.PlatformTikTok:   f.tiktok,
	})

	id, err := f.store.Users.Upsert(ctx, &models.User{OpenID: "g-1", Name: "Sara"})
	if err != nil {
		t.Fatal(err)
	}
	f.userID = id

	f.accounts = NewAccountService(nil, f.store.Accounts, f.store.Notifications, f.store.Team, f.store.Users, f.registry, testKey)
	f.publisher = NewPublisherService(f.store.Accounts, f.store.Posts, f.store.Notifications, f.store.Contents,
		f.store.Team, f.store.Users, f.registry, testKey)
	return f
}

func (f *publishFixture) connect(t *testing.T, platformID int64, accountID, token string) *models.ConnectedAccount {
	t.Helper()
	acc, err := f.accounts.Connect(context.Background(), f.userID, &transfer.ConnectAccountRequest{
		PlatformID:  platformID,
		AccountName: accountID + " page",
		AccountID:   accountID,
		AccessToken: token,
	})
	if err != nil {
		t.Fatal(err)
	}
	return acc
}

func (f *publishFixture) content(t *testing.T, status string) *models.GeneratedContent {
	t.Helper()
	c := &models.GeneratedContent{UserID: f.userID, ContentText: "hello", ContentType: models.ContentTypeText, Status: status}
	id, err := f.store.Contents.Create(context.Background(), nil, c)
	if err != nil {
		t.Fatal(err)
	}
	c.ID = id
	return c
}

func TestPublishFansOutToEveryAccount(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	f.connect(t, models.PlatformFacebook, "fb-1", "fb-token")
	f.connect(t, models.PlatformFacebook, "fb-2", "fb-token-2")
	f.connect(t, models.PlatformTikTok, "tt-1", "tt-token")
	content := f.content(t, models.ContentStatusScheduled)

	summary, err := f.publisher.PublishToAllPlatforms(ctx, f.userID, content)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Attempted != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Status != models.ContentStatusPublished {
		t.Fatalf("status = %s", summary.Status)
	}

	posts, _ := f.store.Posts.ListByContent(ctx, content.ID)
	notes, _ := f.store.Notifications.ListByUser(ctx, f.userID)
	if len(posts) != 3 || len(notes) != 3 {
		t.Fatalf("got %d posts and %d notifications, want 3 of each", len(posts), len(notes))
	}

	var failed int
	for _, p := range posts {
		if p.Status == models.PostStatusFailed {
			failed++
			if p.ErrorMessage != "token expired" {
				t.Errorf("failed post error = %q", p.ErrorMessage)
			}
		} else if p.PlatformPostID != "facebook-post" || p.PublishedAt == nil {
			t.Errorf("published post = %+v", p)
		}
	}
	if failed != 1 {
		t.Fatalf("%d failed posts, want 1", failed)
	}

	for _, n := range notes {
		if n.PostID == nil {
			t.Errorf("notification %q not linked to a post", n.Title)
		}
		if n.Type == models.NotificationFailure && !strings.Contains(n.Message, "token expired") {
			t.Errorf("failure notification message = %q", n.Message)
		}
	}

	stored, _ := f.store.Contents.GetByID(ctx, content.ID)
	if stored.Status != models.ContentStatusPublished {
		t.Fatalf("content status = %s", stored.Status)
	}

	// Tokens are stored sealed and handed to platforms in the clear.
	for _, req := range f.facebook.calls() {
		if !strings.HasPrefix(req.AccessToken, "fb-token") {
			t.Fatalf("facebook got token %q", req.AccessToken)
		}
	}
	accs, _ := f.store.Accounts.ListByUser(ctx, f.userID)
	for _, a := range accs {
		if strings.Contains(a.AccessToken, "token") {
			t.Fatalf("account %d stores a plaintext token", a.ID)
		}
	}
}

func TestPublishAllFailedMarksContentFailed(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	f.connect(t, models.PlatformTikTok, "tt-1", "tt-token")
	content := f.content(t, models.ContentStatusScheduled)

	summary, err := f.publisher.PublishToAllPlatforms(ctx, f.userID, content)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Status != models.ContentStatusFailed {
		t.Fatalf("status = %s", summary.Status)
	}
	stored, _ := f.store.Contents.GetByID(ctx, content.ID)
	if stored.Status != models.ContentStatusFailed {
		t.Fatalf("content status = %s", stored.Status)
	}
}

func TestPublishSkipsDisconnectedInactiveAndUnknownAccounts(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	gone := f.connect(t, models.PlatformFacebook, "fb-1", "tok")
	paused := f.connect(t, models.PlatformFacebook, "fb-2", "tok")
	f.connect(t, models.PlatformFacebook, "fb-3", "tok")
	f.connect(t, models.PlatformBlogger, "blog-1", "tok")

	if err := f.accounts.Disconnect(ctx, f.userID, gone.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.accounts.SetStatus(ctx, f.userID, paused.ID, false); err != nil {
		t.Fatal(err)
	}

	summary, err := f.publisher.PublishToAllPlatforms(ctx, f.userID, f.content(t, models.ContentStatusDraft))
	if err != nil {
		t.Fatal(err)
	}
	if summary.Attempted != 1 {
		t.Fatalf("attempted = %d, want only fb-3", summary.Attempted)
	}
	calls := f.facebook.calls()
	if len(calls) != 1 || calls[0].AccountID != "fb-3" {
		t.Fatalf("facebook calls = %+v", calls)
	}
}

func TestPublishWithoutAccountsLeavesNoRows(t *testing.T) {
	ctx := context.Background()
	f := newPublishFixture(t)
	content := f.content(t, models.ContentStatusScheduled)

	summary, err := f.publisher.PublishToAllPlatforms(ctx, f.userID, content)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Attempted != 0 || summary.Status != models.ContentStatusPublished {
		t.Fatalf("summary = %+v", summary)
	}
	posts, _ := f.store.Posts.ListByUser(ctx, f.userID)
	if len(posts) != 0 {
		t.Fatalf("%d posts written", len(posts))
	}
}

func TestAggregateStatus(t *testing.T) {
	cases := []struct {
		attempted, succeeded int
		want                 string
	}{
		{0, 0, models.ContentStatusPublished},
		{3, 0, models.ContentStatusFailed},
		{3, 1, models.ContentStatusPublished},
		{2, 2, models.ContentStatusPublished},
	}
	for _, tc := range cases {
		if got := aggregateStatus(tc.attempted, tc.succeeded); got != tc.want {
			t.Errorf("aggregateStatus(%d, %d) = %s, want %s", tc.attempted, tc.succeeded, got, tc.want)
		}
	}
}

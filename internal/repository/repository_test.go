package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

func TestReadsDegradeWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	schedules, err := NewScheduleRepository(nil).ListDue(ctx, time.Now())
	if err != nil || len(schedules) != 0 {
		t.Fatalf("ListDue without db = %v, %v; want empty, nil", schedules, err)
	}

	acc, err := NewConnectedAccountRepository(nil).GetByID(ctx, 1)
	if err != nil || acc != nil {
		t.Fatalf("GetByID without db = %v, %v; want nil, nil", acc, err)
	}

	user, found, err := NewUserRepository(nil).GetByOpenID(ctx, "abc")
	if err != nil || found || user != nil {
		t.Fatalf("GetByOpenID without db = %v, %v, %v", user, found, err)
	}

	overview, err := NewAnalyticsRepository(nil).Overview(ctx, 1, time.Now())
	if err != nil || overview == nil || overview.TotalPosts != 0 {
		t.Fatalf("Overview without db = %+v, %v", overview, err)
	}
}

func TestWritesFailWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	if _, err := NewGeneratedContentRepository(nil).Create(ctx, nil, &models.GeneratedContent{}); !errors.Is(err, ErrDatabaseUnavailable) {
		t.Fatalf("content Create err = %v, want ErrDatabaseUnavailable", err)
	}
	if _, err := NewNotificationRepository(nil).Create(ctx, &models.Notification{}); !errors.Is(err, ErrDatabaseUnavailable) {
		t.Fatalf("notification Create err = %v, want ErrDatabaseUnavailable", err)
	}
	if err := NewScheduleRepository(nil).SetNextRun(ctx, 1, nil); !errors.Is(err, ErrDatabaseUnavailable) {
		t.Fatalf("SetNextRun err = %v, want ErrDatabaseUnavailable", err)
	}
	if _, err := NewUserRepository(nil).Upsert(ctx, &models.User{OpenID: "x"}); !errors.Is(err, ErrDatabaseUnavailable) {
		t.Fatalf("Upsert err = %v, want ErrDatabaseUnavailable", err)
	}
}

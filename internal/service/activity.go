package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

// activityRecorder writes the team activity feed. Failures are logged and
// never surface to the caller.
type activityRecorder struct {
	team  repository.TeamRepository
	users repository.UserRepository
}

func (a activityRecorder) record(ctx context.Context, userID int64, kind, action, details string) {
	if a.team == nil {
		return
	}

	actor := "system"
	if a.users != nil && userID != 0 {
		if u, ok, err := a.users.GetByID(ctx, userID); err == nil && ok && u.Name != "" {
			actor = u.Name
		} else {
			actor = fmt.Sprintf("user %d", userID)
		}
	}

	err := a.team.LogActivity(ctx, &models.ActivityLog{
		UserID:  userID,
		Actor:   actor,
		Action:  action,
		Kind:    kind,
		Details: details,
	})
	if err != nil {
		slog.Warn("activity not recorded", "user_id", userID, "kind", kind, "err", err)
	}
}

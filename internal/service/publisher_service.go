package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/pkg/utils"
)

type AccountResult struct {
	AccountID  int64  `json:"account_id"`
	PlatformID int64  `json:"platform_id"`
	Platform   string `json:"platform"`
	RecordID   int64  `json:"record_id"`
	platform.Result
}

type PublishSummary struct {
	ContentID int64            `json:"content_id"`
	Attempted int              `json:"attempted"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Status    string           `json:"status"`
	Results   []*AccountResult `json:"results"`
}

type PublisherService interface {
	PublishToAllPlatforms(ctx context.Context, userID int64, content *models.GeneratedContent) (*PublishSummary, error)
}

type publisherService struct {
	accounts      repository.ConnectedAccountRepository
	posts         repository.PostRepository
	notifications repository.NotificationRepository
	contents      repository.GeneratedContentRepository
	registry      *platform.Registry
	activity      activityRecorder
	secretKey     []byte
	now           func() time.Time
}

func NewPublisherService(
	accounts repository.ConnectedAccountRepository,
	posts repository.PostRepository,
	notifications repository.NotificationRepository,
	contents repository.GeneratedContentRepository,
	team repository.TeamRepository,
	users repository.UserRepository,
	registry *platform.Registry,
	secretKey string) PublisherService {
	return &publisherService{
		accounts:      accounts,
		posts:         posts,
		notifications: notifications,
		contents:      contents,
		registry:      registry,
		activity:      activityRecorder{team: team, users: users},
		secretKey:     []byte(secretKey),
		now:           time.Now,
	}
}

// aggregateStatus: any success publishes the content, all failures fail it,
// and nothing attempted counts as published.
func aggregateStatus(attempted, succeeded int) string {
	if attempted > 0 && succeeded == 0 {
		return models.ContentStatusFailed
	}
	return models.ContentStatusPublished
}

// PublishToAllPlatforms fans content out to every active account of the user,
// one account at a time. Each attempt leaves one post row and one
// notification, whatever the outcome.
func (s *publisherService) PublishToAllPlatforms(ctx context.Context, userID int64, content *models.GeneratedContent) (*PublishSummary, error) {
	if content == nil {
		return nil, invalid("content is required")
	}

	accounts, err := s.accounts.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PublishSummary{ContentID: content.ID}
	var writeErrs []error

	for _, acc := range accounts {
		if !acc.IsActive {
			continue
		}
		pub, ok := s.registry.Get(acc.PlatformID)
		if !ok {
			slog.Warn("skipping account on unknown platform", "account_id", acc.ID, "platform_id", acc.PlatformID)
			continue
		}

		res := s.publishOne(ctx, pub, acc, content)
		summary.Attempted++
		if res.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}

		if err := s.record(ctx, userID, content, acc, res); err != nil {
			writeErrs = append(writeErrs, err)
		}
		summary.Results = append(summary.Results, res)
	}

	summary.Status = aggregateStatus(summary.Attempted, summary.Succeeded)
	if models.CanTransition(content.Status, summary.Status) {
		if err := s.contents.UpdateStatus(ctx, content.ID, summary.Status); err != nil {
			writeErrs = append(writeErrs, err)
		} else {
			content.Status = summary.Status
		}
	} else {
		slog.Warn("content status left unchanged", "content_id", content.ID, "from", content.Status, "to", summary.Status)
	}

	s.activity.record(ctx, userID, models.ActivityPublish, "published content",
		fmt.Sprintf("content %d: %d/%d platforms succeeded", content.ID, summary.Succeeded, summary.Attempted))

	return summary, errors.Join(writeErrs...)
}

func (s *publisherService) publishOne(ctx context.Context, pub platform.Publisher, acc *models.ConnectedAccount, content *models.GeneratedContent) *AccountResult {
	out := &AccountResult{AccountID: acc.ID, PlatformID: acc.PlatformID, Platform: pub.Name()}

	token, err := utils.OpenToken(acc.AccessToken, s.secretKey)
	if err != nil {
		out.Result = platform.Result{Error: "access token could not be decrypted"}
		return out
	}

	out.Result = pub.Publish(ctx, platform.Request{
		AccountID:   acc.AccountID,
		AccessToken: token,
		Text:        content.ContentText,
		ImageURL:    content.ImageURL,
	})
	return out
}

func (s *publisherService) record(ctx context.Context, userID int64, content *models.GeneratedContent, acc *models.ConnectedAccount, res *AccountResult) error {
	post := &models.Post{
		UserID:     userID,
		ContentID:  content.ID,
		PlatformID: acc.PlatformID,
		AccountID:  acc.ID,
	}
	if res.Success {
		now := s.now()
		post.Status = models.PostStatusPublished
		post.PlatformPostID = res.Result.PostID
		post.PublishedAt = &now
	} else {
		post.Status = models.PostStatusFailed
		post.ErrorMessage = res.Error
	}

	postID, err := s.posts.Create(ctx, nil, post)
	if err != nil {
		slog.Error("post row not written", "content_id", content.ID, "account_id", acc.ID, "err", err)
		return err
	}
	res.RecordID = postID

	display := models.PlatformDisplayNames[acc.PlatformID]
	n := &models.Notification{
		UserID:       userID,
		PostID:       &postID,
		PlatformName: models.PlatformNames[acc.PlatformID],
	}
	if res.Success {
		n.Type = models.NotificationSuccess
		n.Title = "Published successfully"
		n.Message = fmt.Sprintf("Content was published to %s (%s)", display, acc.AccountName)
	} else {
		n.Type = models.NotificationFailure
		n.Title = "Publishing failed"
		n.Message = fmt.Sprintf("Publishing to %s (%s) failed: %s", display, acc.AccountName, res.Error)
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		slog.Error("notification not written", "content_id", content.ID, "account_id", acc.ID, "err", err)
		return err
	}
	return nil
}

package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/pkg/utils"
	"golang.org/x/oauth2"
)

const (
	refreshWindow      = 30 * time.Minute
	refreshParallelism = 10
)

// Google issues the tokens for these platforms, so one OAuth client can
// refresh them all.
var googlePlatforms = []int64{models.PlatformGoogleBusiness, models.PlatformBlogger}

type TokenRefreshJob struct {
	accounts  repository.ConnectedAccountRepository
	oauth     *oauth2.Config
	secretKey []byte
	now       func() time.Time
}

func NewTokenRefreshJob(accounts repository.ConnectedAccountRepository, oauth *oauth2.Config, secretKey string) *TokenRefreshJob {
	return &TokenRefreshJob{
		accounts:  accounts,
		oauth:     oauth,
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

func (j *TokenRefreshJob) Name() string { return "token-refresh" }

// Run refreshes every Google token that expires within the next half hour.
// One failing account does not stop the others.
func (j *TokenRefreshJob) Run(ctx context.Context) error {
	accounts, err := j.accounts.ListExpiring(ctx, googlePlatforms, j.now().Add(refreshWindow))
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, refreshParallelism)

	for _, acc := range accounts {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}
		wg.Add(1)

		go func(acc *models.ConnectedAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.refresh(ctx, acc); err != nil {
				slog.Warn("token refresh failed", "account_id", acc.ID, "platform_id", acc.PlatformID, "err", err)
			}
		}(acc)
	}

	wg.Wait()
	return nil
}

func (j *TokenRefreshJob) refresh(ctx context.Context, acc *models.ConnectedAccount) error {
	refreshToken, err := utils.OpenToken(acc.RefreshToken, j.secretKey)
	if err != nil {
		return err
	}

	token, err := j.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return err
	}

	access, err := utils.SealToken(token.AccessToken, j.secretKey)
	if err != nil {
		return err
	}
	refresh, err := utils.SealToken(token.RefreshToken, j.secretKey)
	if err != nil {
		return err
	}

	var expiry *time.Time
	if !token.Expiry.IsZero() {
		expiry = &token.Expiry
	}
	if err := j.accounts.UpdateTokens(ctx, acc.ID, access, refresh, expiry); err != nil {
		return err
	}

	slog.Info("token refreshed", "account_id", acc.ID, "platform_id", acc.PlatformID)
	return nil
}

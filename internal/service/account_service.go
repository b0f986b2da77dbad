package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
	"github.com/maheshrc27/autopost/pkg/utils"
)

type AccountService interface {
	ListPlatforms(ctx context.Context) ([]*models.SocialPlatform, error)
	List(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error)
	Connect(ctx context.Context, userID int64, req *transfer.ConnectAccountRequest) (*models.ConnectedAccount, error)
	Disconnect(ctx context.Context, userID, accountID int64) error
	SetStatus(ctx context.Context, userID, accountID int64, active bool) error
	TestConnection(ctx context.Context, userID, accountID int64) (*transfer.ConnectionTestResponse, error)
}

type accountService struct {
	platforms     repository.PlatformRepository
	accounts      repository.ConnectedAccountRepository
	notifications repository.NotificationRepository
	registry      *platform.Registry
	activity      activityRecorder
	secretKey     []byte
}

func NewAccountService(
	platforms repository.PlatformRepository,
	accounts repository.ConnectedAccountRepository,
	notifications repository.NotificationRepository,
	team repository.TeamRepository,
	users repository.UserRepository,
	registry *platform.Registry,
	secretKey string) AccountService {
	return &accountService{
		platforms:     platforms,
		accounts:      accounts,
		notifications: notifications,
		registry:      registry,
		activity:      activityRecorder{team: team, users: users},
		secretKey:     []byte(secretKey),
	}
}

func (s *accountService) ListPlatforms(ctx context.Context) ([]*models.SocialPlatform, error) {
	var list []*models.SocialPlatform
	if s.platforms != nil {
		var err error
		if list, err = s.platforms.List(ctx); err != nil {
			return nil, err
		}
	}
	if len(list) > 0 {
		return list, nil
	}

	// Without a database the reference set is still known.
	for id, name := range models.PlatformNames {
		list = append(list, &models.SocialPlatform{ID: id, Name: name, DisplayName: models.PlatformDisplayNames[id]})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	return s.accounts.ListByUser(ctx, userID)
}

func (s *accountService) Connect(ctx context.Context, userID int64, req *transfer.ConnectAccountRequest) (*models.ConnectedAccount, error) {
	if _, ok := models.PlatformNames[req.PlatformID]; !ok {
		return nil, invalid("unknown platform %d", req.PlatformID)
	}

	exists, err := s.accounts.Exists(ctx, userID, req.PlatformID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.Info(ErrDuplicateAccount.Error(), "user_id", userID, "platform_id", req.PlatformID)
		return nil, ErrDuplicateAccount
	}

	access, err := utils.SealToken(req.AccessToken, s.secretKey)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.SealToken(req.RefreshToken, s.secretKey)
	if err != nil {
		return nil, err
	}

	acc := &models.ConnectedAccount{
		UserID:       userID,
		PlatformID:   req.PlatformID,
		AccountName:  req.AccountName,
		AccountID:    req.AccountID,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenExpiry:  req.TokenExpiry,
		IsActive:     true,
	}
	id, err := s.accounts.Create(ctx, nil, acc)
	if err != nil {
		return nil, err
	}
	acc.ID = id

	s.activity.record(ctx, userID, models.ActivityAccountChanged, "connected account",
		fmt.Sprintf("%s: %s", models.PlatformDisplayNames[req.PlatformID], req.AccountName))
	return acc, nil
}

func (s *accountService) owned(ctx context.Context, userID, accountID int64) (*models.ConnectedAccount, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.UserID != userID {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	return acc, nil
}

func (s *accountService) Disconnect(ctx context.Context, userID, accountID int64) error {
	acc, err := s.owned(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, acc.ID); err != nil {
		return err
	}

	s.activity.record(ctx, userID, models.ActivityAccountChanged, "disconnected account",
		fmt.Sprintf("%s: %s", models.PlatformDisplayNames[acc.PlatformID], acc.AccountName))
	return nil
}

func (s *accountService) SetStatus(ctx context.Context, userID, accountID int64, active bool) error {
	acc, err := s.owned(ctx, userID, accountID)
	if err != nil {
		return err
	}
	return s.accounts.UpdateStatus(ctx, acc.ID, active)
}

// TestConnection asks the platform whether the stored token still works and
// leaves the outcome in the user's notifications.
func (s *accountService) TestConnection(ctx context.Context, userID, accountID int64) (*transfer.ConnectionTestResponse, error) {
	acc, err := s.owned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	pub, ok := s.registry.Get(acc.PlatformID)
	if !ok {
		return nil, invalid("unknown platform %d", acc.PlatformID)
	}

	token, err := utils.OpenToken(acc.AccessToken, s.secretKey)
	if err != nil {
		return nil, err
	}

	resp := &transfer.ConnectionTestResponse{OK: true, Message: "connection is working"}
	n := &models.Notification{
		UserID:       userID,
		Type:         models.NotificationInfo,
		Title:        "Connection test passed",
		PlatformName: models.PlatformNames[acc.PlatformID],
	}
	if err := pub.Verify(ctx, platform.Request{AccountID: acc.AccountID, AccessToken: token}); err != nil {
		resp = &transfer.ConnectionTestResponse{OK: false, Message: err.Error()}
		n.Type = models.NotificationWarning
		n.Title = "Connection test failed"
	}
	n.Message = fmt.Sprintf("%s (%s): %s", models.PlatformDisplayNames[acc.PlatformID], acc.AccountName, resp.Message)

	if _, err := s.notifications.Create(ctx, n); err != nil {
		slog.Warn("connection test notification not written", "account_id", acc.ID, "err", err)
	}
	return resp, nil
}

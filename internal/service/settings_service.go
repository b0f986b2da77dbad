package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type SettingsService interface {
	List(ctx context.Context, userID int64) ([]*models.ContentSetting, error)
	Get(ctx context.Context, userID, id int64) (*models.ContentSetting, error)
	Create(ctx context.Context, userID int64, req *transfer.ContentSettingRequest) (*models.ContentSetting, error)
	Update(ctx context.Context, userID, id int64, req *transfer.ContentSettingRequest) (*models.ContentSetting, error)
	Delete(ctx context.Context, userID, id int64) error
}

type settingsService struct {
	sr repository.ContentSettingRepository
}

func NewSettingsService(sr repository.ContentSettingRepository) SettingsService {
	return &settingsService{sr: sr}
}

// SettingFromRequest applies defaults: language ar, hashtags and emojis on,
// 280 characters.
func SettingFromRequest(req *transfer.ContentSettingRequest) (*models.ContentSetting, error) {
	setting := &models.ContentSetting{}
	if err := copier.Copy(setting, req); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("copy content setting: %w", err)
	}

	if setting.Language == "" {
		setting.Language = models.DefaultLanguage
	}
	if setting.MaxPostLength == 0 {
		setting.MaxPostLength = models.DefaultMaxPostLength
	}
	setting.IncludeHashtags = req.IncludeHashtags == nil || *req.IncludeHashtags
	setting.IncludeEmojis = req.IncludeEmojis == nil || *req.IncludeEmojis
	return setting, nil
}

func (s *settingsService) List(ctx context.Context, userID int64) ([]*models.ContentSetting, error) {
	return s.sr.ListByUser(ctx, userID)
}

func (s *settingsService) Get(ctx context.Context, userID, id int64) (*models.ContentSetting, error) {
	setting, err := s.sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.UserID != userID {
		return nil, fmt.Errorf("content setting %d: %w", id, ErrNotFound)
	}
	return setting, nil
}

func (s *settingsService) Create(ctx context.Context, userID int64, req *transfer.ContentSettingRequest) (*models.ContentSetting, error) {
	setting, err := SettingFromRequest(req)
	if err != nil {
		return nil, err
	}
	setting.UserID = userID

	id, err := s.sr.Create(ctx, nil, setting)
	if err != nil {
		return nil, err
	}
	setting.ID = id
	return setting, nil
}

func (s *settingsService) Update(ctx context.Context, userID, id int64, req *transfer.ContentSettingRequest) (*models.ContentSetting, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := SettingFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.UserID = current.UserID
	updated.CreatedAt = current.CreatedAt
	if err := s.sr.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *settingsService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.sr.Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type CampaignService interface {
	List(ctx context.Context, userID int64) ([]*models.Campaign, error)
	Get(ctx context.Context, userID, id int64) (*models.Campaign, error)
	Create(ctx context.Context, userID int64, req *transfer.CampaignRequest) (*models.Campaign, error)
	Update(ctx context.Context, userID, id int64, req *transfer.CampaignRequest) (*models.Campaign, error)
	Delete(ctx context.Context, userID, id int64) error
}

type campaignService struct {
	campaigns repository.CampaignRepository
	activity  activityRecorder
}

func NewCampaignService(campaigns repository.CampaignRepository, team repository.TeamRepository, users repository.UserRepository) CampaignService {
	return &campaignService{
		campaigns: campaigns,
		activity:  activityRecorder{team: team, users: users},
	}
}

func campaignFromRequest(req *transfer.CampaignRequest) (*models.Campaign, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, invalid("end date is before start date")
	}
	return &models.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Topic:       req.Topic,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}, nil
}

func (s *campaignService) List(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	return s.campaigns.ListByUser(ctx, userID)
}

func (s *campaignService) Get(ctx context.Context, userID, id int64) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, fmt.Errorf("campaign %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *campaignService) Create(ctx context.Context, userID int64, req *transfer.CampaignRequest) (*models.Campaign, error) {
	c, err := campaignFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.UserID = userID

	id, err := s.campaigns.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	s.activity.record(ctx, userID, models.ActivityCampaignCreated, "created campaign", c.Name)
	return c, nil
}

func (s *campaignService) Update(ctx context.Context, userID, id int64, req *transfer.CampaignRequest) (*models.Campaign, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c, err := campaignFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.ID = current.ID
	c.UserID = current.UserID
	c.CreatedAt = current.CreatedAt

	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, id)
}

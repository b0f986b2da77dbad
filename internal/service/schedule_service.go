package service

import (
	"context"
	"fmt"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type ScheduleService interface {
	List(ctx context.Context, userID int64) ([]*models.Schedule, error)
	Create(ctx context.Context, userID int64, req *transfer.ScheduleRequest) (*models.Schedule, error)
	Update(ctx context.Context, userID, id int64, req *transfer.ScheduleUpdateRequest) (*models.Schedule, error)
	Delete(ctx context.Context, userID, id int64) error
}

type scheduleService struct {
	schedules repository.ScheduleRepository
	settings  repository.ContentSettingRepository
	activity  activityRecorder
	now       func() time.Time
}

func NewScheduleService(
	schedules repository.ScheduleRepository,
	settings repository.ContentSettingRepository,
	team repository.TeamRepository,
	users repository.UserRepository) ScheduleService {
	return &scheduleService{
		schedules: schedules,
		settings:  settings,
		activity:  activityRecorder{team: team, users: users},
		now:       time.Now,
	}
}

func (s *scheduleService) List(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	return s.schedules.ListByUser(ctx, userID)
}

func checkWeeklyDays(sc *models.Schedule) error {
	if sc.ScheduleType != models.ScheduleWeekly {
		return nil
	}
	days, err := parseDays(sc.ScheduleDays)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return invalid("weekly schedules need at least one weekday")
	}
	return nil
}

func (s *scheduleService) Create(ctx context.Context, userID int64, req *transfer.ScheduleRequest) (*models.Schedule, error) {
	setting, err := s.settings.GetByID(ctx, req.ContentSettingID)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.UserID != userID {
		return nil, fmt.Errorf("content setting %d: %w", req.ContentSettingID, ErrNotFound)
	}

	sc := &models.Schedule{
		UserID:           userID,
		ContentSettingID: setting.ID,
		ScheduleType:     req.ScheduleType,
		ScheduleDays:     encodeDays(req.ScheduleDays),
		ScheduleTime:     req.ScheduleTime,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}
	if err := checkWeeklyDays(sc); err != nil {
		return nil, err
	}

	next, err := NextRunTime(sc, s.now())
	if err != nil {
		return nil, err
	}
	sc.NextRunAt = next

	id, err := s.schedules.Create(ctx, nil, sc)
	if err != nil {
		return nil, err
	}
	sc.ID = id

	s.activity.record(ctx, userID, models.ActivityUpdate, "created schedule",
		fmt.Sprintf("%s at %s for %q", sc.ScheduleType, sc.ScheduleTime, setting.Topic))
	return sc, nil
}

func (s *scheduleService) owned(ctx context.Context, userID, id int64) (*models.Schedule, error) {
	sc, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil || sc.UserID != userID {
		return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
	}
	return sc, nil
}

// Update recomputes the next run whenever the timing changes or the
// schedule is switched back on.
func (s *scheduleService) Update(ctx context.Context, userID, id int64, req *transfer.ScheduleUpdateRequest) (*models.Schedule, error) {
	sc, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	retime := false
	if req.ScheduleType != nil && *req.ScheduleType != sc.ScheduleType {
		sc.ScheduleType = *req.ScheduleType
		retime = true
	}
	if req.ScheduleTime != nil && *req.ScheduleTime != sc.ScheduleTime {
		sc.ScheduleTime = *req.ScheduleTime
		retime = true
	}
	if req.ScheduleDays != nil {
		if days := encodeDays(req.ScheduleDays); days != sc.ScheduleDays {
			sc.ScheduleDays = days
			retime = true
		}
	}
	if req.IsActive != nil {
		if *req.IsActive && !sc.IsActive {
			retime = true
		}
		sc.IsActive = *req.IsActive
	}

	if err := checkWeeklyDays(sc); err != nil {
		return nil, err
	}

	if retime {
		if sc.ScheduleType == models.ScheduleOnce {
			// A once schedule is re-armed from its new time, not its old slot.
			sc.NextRunAt = nil
		}
		next, err := NextRunTime(sc, s.now())
		if err != nil {
			return nil, err
		}
		sc.NextRunAt = next
	}

	if err := s.schedules.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scheduleService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, id)
}

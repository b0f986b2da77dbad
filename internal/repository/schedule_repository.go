package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/pkg/errors"
)

type ScheduleRepository interface {
	Create(ctx context.Context, tx *sql.Tx, s *models.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Schedule, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Schedule, error)
	Update(ctx context.Context, s *models.Schedule) error
	SetNextRun(ctx context.Context, id int64, next *time.Time) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = `id, user_id, content_setting_id, schedule_type, schedule_days, schedule_time,
	is_active, next_run_at, created_at, updated_at`

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(&s.ID, &s.UserID, &s.ContentSettingID, &s.ScheduleType, &s.ScheduleDays, &s.ScheduleTime,
		&s.IsActive, &s.NextRunAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepository) Create(ctx context.Context, tx *sql.Tx, s *models.Schedule) (int64, error) {
	if r.db == nil && tx == nil {
		return 0, ErrDatabaseUnavailable
	}

	query := `
		INSERT INTO schedules (
			user_id, content_setting_id, schedule_type, schedule_days,
			schedule_time, is_active, next_run_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	args := []any{s.UserID, s.ContentSettingID, s.ScheduleType, s.ScheduleDays,
		s.ScheduleTime, s.IsActive, s.NextRunAt}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, errors.Wrap(err, "insert schedule")
	}
	return id, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	if r.db == nil {
		return nil, nil
	}
	s, err := scanSchedule(r.db.QueryRowContext(ctx, "SELECT "+scheduleColumns+" FROM schedules WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "get schedule")
	}
	return s, nil
}

func (r *scheduleRepository) list(ctx context.Context, query string, args ...any) ([]*models.Schedule, error) {
	if r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.Wrap(err, "list schedules")
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	return r.list(ctx, "SELECT "+scheduleColumns+" FROM schedules WHERE user_id = $1 ORDER BY id", userID)
}

// ListDue returns active schedules whose next run is at or before now,
// oldest first.
func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Schedule, error) {
	query := "SELECT " + scheduleColumns + ` FROM schedules
		WHERE is_active AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at, id`
	return r.list(ctx, query, now)
}

func (r *scheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	query := `
		UPDATE schedules
		SET schedule_type = $1,
			schedule_days = $2,
			schedule_time = $3,
			is_active = $4,
			next_run_at = $5,
			updated_at = NOW()
		WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, s.ScheduleType, s.ScheduleDays, s.ScheduleTime, s.IsActive, s.NextRunAt, s.ID)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "update schedule")
	}
	return nil
}

func (r *scheduleRepository) SetNextRun(ctx context.Context, id int64, next *time.Time) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "UPDATE schedules SET next_run_at = $1, updated_at = NOW() WHERE id = $2", next, id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "set next run")
	}
	return nil
}

func (r *scheduleRepository) Deactivate(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "UPDATE schedules SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "deactivate schedule")
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrDatabaseUnavailable
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return errors.Wrap(err, "delete schedule")
	}
	return nil
}

package models

import "time"

const (
	ScheduleDaily  = "daily"
	ScheduleWeekly = "weekly"
	ScheduleCustom = "custom"
	ScheduleOnce   = "once"
)

type Schedule struct {
	ID               int64      `db:"id" json:"id"`
	UserID           int64      `db:"user_id" json:"user_id"`
	ContentSettingID int64      `db:"content_setting_id" json:"content_setting_id"`
	ScheduleType     string     `db:"schedule_type" json:"schedule_type"`
	ScheduleDays     string     `db:"schedule_days" json:"schedule_days"` // JSON array of weekdays, 0=Sunday
	ScheduleTime     string     `db:"schedule_time" json:"schedule_time"` // HH:MM
	IsActive         bool       `db:"is_active" json:"is_active"`
	NextRunAt        *time.Time `db:"next_run_at" json:"next_run_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

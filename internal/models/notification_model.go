package models

import "time"

const (
	NotificationSuccess = "success"
	NotificationFailure = "failure"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

type Notification struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	PostID       *int64    `db:"post_id" json:"post_id,omitempty"`
	Type         string    `db:"type" json:"type"`
	Title        string    `db:"title" json:"title"`
	Message      string    `db:"message" json:"message"`
	PlatformName string    `db:"platform_name" json:"platform_name,omitempty"`
	IsRead       bool      `db:"is_read" json:"is_read"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

package models

import "time"

const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
	PostStatusScheduled = "scheduled"
)

// Post records one publish attempt of a content row to one connected account.
type Post struct {
	ID             int64      `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	ContentID      int64      `db:"content_id" json:"content_id"`
	PlatformID     int64      `db:"platform_id" json:"platform_id"`
	AccountID      int64      `db:"account_id" json:"account_id"`
	PlatformPostID string     `db:"platform_post_id" json:"platform_post_id,omitempty"`
	Status         string     `db:"status" json:"status"`
	ErrorMessage   string     `db:"error_message" json:"error_message,omitempty"`
	PublishedAt    *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

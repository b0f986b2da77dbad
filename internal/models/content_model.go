package models

import "time"

const (
	ContentTypeText     = "text"
	ContentTypeImage    = "image"
	ContentTypeVideo    = "video"
	ContentTypeCarousel = "carousel"
)

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
	ContentStatusFailed    = "failed"
)

type GeneratedContent struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	ScheduleID   *int64     `db:"schedule_id" json:"schedule_id,omitempty"`
	ContentText  string     `db:"content_text" json:"content_text"`
	ImageURL     string     `db:"image_url" json:"image_url,omitempty"`
	ImageKey     string     `db:"image_key" json:"image_key,omitempty"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       string     `db:"status" json:"status"`
	ScheduledFor *time.Time `db:"scheduled_for" json:"scheduled_for,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// CanTransition reports whether a content row may move from one status to
// another. Terminal statuses never move.
func CanTransition(from, to string) bool {
	switch from {
	case ContentStatusDraft, ContentStatusScheduled:
		switch to {
		case ContentStatusDraft, ContentStatusScheduled, ContentStatusPublished, ContentStatusFailed:
			return true
		}
	}
	return false
}

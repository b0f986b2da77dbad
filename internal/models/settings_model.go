package models

import "time"

const (
	DefaultLanguage      = "ar"
	DefaultMaxPostLength = 280
)

type ContentSetting struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	Topic           string    `db:"topic" json:"topic"`
	ContentStyle    string    `db:"content_style" json:"content_style"`
	Tone            string    `db:"tone" json:"tone"`
	Language        string    `db:"language" json:"language"`
	IncludeHashtags bool      `db:"include_hashtags" json:"include_hashtags"`
	IncludeEmojis   bool      `db:"include_emojis" json:"include_emojis"`
	MaxPostLength   int       `db:"max_post_length" json:"max_post_length"` // 0 means no limit
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

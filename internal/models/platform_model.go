package models

import "time"

// Platform ids are fixed; the publisher dispatches on them.
const (
	PlatformFacebook       int64 = 1
	PlatformInstagram      int64 = 2
	PlatformTikTok         int64 = 3
	PlatformGoogleBusiness int64 = 4
	PlatformBlogger        int64 = 5
)

var PlatformNames = map[int64]string{
	PlatformFacebook:       "facebook",
	PlatformInstagram:      "instagram",
	PlatformTikTok:         "tiktok",
	PlatformGoogleBusiness: "google_business",
	PlatformBlogger:        "blogger",
}

var PlatformDisplayNames = map[int64]string{
	PlatformFacebook:       "Facebook",
	PlatformInstagram:      "Instagram",
	PlatformTikTok:         "TikTok",
	PlatformGoogleBusiness: "Google Business",
	PlatformBlogger:        "Blogger",
}

type SocialPlatform struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ConnectedAccount struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	PlatformID   int64      `db:"platform_id" json:"platform_id"`
	AccountName  string     `db:"account_name" json:"account_name"`
	AccountID    string     `db:"account_id" json:"account_id"`
	AccessToken  string     `db:"access_token" json:"-"`
	RefreshToken string     `db:"refresh_token" json:"-"`
	TokenExpiry  *time.Time `db:"token_expiry" json:"token_expiry,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

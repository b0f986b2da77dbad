package transfer

import "time"

type ConnectAccountRequest struct {
	PlatformID   int64      `json:"platform_id" validate:"required,min=1,max=5"`
	AccountName  string     `json:"account_name" validate:"required,max=255"`
	AccountID    string     `json:"account_id" validate:"required,max=255"`
	AccessToken  string     `json:"access_token" validate:"required"`
	RefreshToken string     `json:"refresh_token"`
	TokenExpiry  *time.Time `json:"token_expiry"`
}

type AccountStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ConnectionTestResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

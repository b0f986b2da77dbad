package transfer

import "time"

type CampaignRequest struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	Topic       string    `json:"topic" validate:"required,max=500"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	IsActive    *bool     `json:"is_active"`
}

package transfer

import "time"

type ContentRequest struct {
	ContentText  string     `json:"content_text" validate:"required"`
	ImageURL     string     `json:"image_url" validate:"omitempty,url"`
	ContentType  string     `json:"content_type" validate:"omitempty,oneof=text image video carousel"`
	ScheduleID   *int64     `json:"schedule_id"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

type ContentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft scheduled published failed"`
}

type EnhanceRequest struct {
	ContentSettingID int64 `json:"content_setting_id" validate:"required,min=1"`
}

type PublishResponse struct {
	TaskID       string    `json:"task_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

package transfer

type ScheduleRequest struct {
	ContentSettingID int64  `json:"content_setting_id" validate:"required,min=1"`
	ScheduleType     string `json:"schedule_type" validate:"required,oneof=daily weekly custom once"`
	ScheduleTime     string `json:"schedule_time" validate:"required,clock"`
	ScheduleDays     []int  `json:"schedule_days" validate:"omitempty,dive,min=0,max=6"`
	IsActive         *bool  `json:"is_active"`
}

// ScheduleUpdateRequest only touches the fields that are set.
type ScheduleUpdateRequest struct {
	ScheduleType *string `json:"schedule_type" validate:"omitempty,oneof=daily weekly custom once"`
	ScheduleTime *string `json:"schedule_time" validate:"omitempty,clock"`
	ScheduleDays []int   `json:"schedule_days" validate:"omitempty,dive,min=0,max=6"`
	IsActive     *bool   `json:"is_active"`
}

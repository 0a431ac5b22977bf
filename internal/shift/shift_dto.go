package shift

type CreateShiftRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	BreakStartTime *string `json:"break_start_time"`
	BreakEndTime   *string `json:"break_end_time"`
	BreakDuration  *int    `json:"break_duration" binding:"omitempty,min=0,max=720"`
	GracePeriod    int     `json:"grace_period" binding:"min=0,max=240"`
	IsNightShift   bool    `json:"is_night_shift"`
}

type UpdateShiftRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	BreakStartTime *string `json:"break_start_time"`
	BreakEndTime   *string `json:"break_end_time"`
	BreakDuration  *int    `json:"break_duration" binding:"omitempty,min=0,max=720"`
	GracePeriod    int     `json:"grace_period" binding:"min=0,max=240"`
	IsNightShift   bool    `json:"is_night_shift"`
	IsActive       *bool   `json:"is_active"`
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
	BreakDuration  int     `json:"break_duration"`
	GracePeriod    int     `json:"grace_period"`
	IsNightShift   bool    `json:"is_night_shift"`
	IsActive       bool    `json:"is_active"`
	WorkingHours   float64 `json:"working_hours"`
}

package attendance

import "github.com/shopspring/decimal"

type ClockInRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type RegularizeRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	ClockIn    string  `json:"clock_in" binding:"required"`
	ClockOut   string  `json:"clock_out" binding:"required"`
	ShiftID    *string `json:"shift_id" binding:"omitempty,uuid"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

type SetStatusRequest struct {
	Status    string  `json:"status" binding:"required,oneof=present half_day absent holiday on_leave"`
	IsHoliday *bool   `json:"is_holiday"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`
}

type GetAttendancesFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status" binding:"omitempty,oneof=present half_day absent holiday on_leave"`
}

type AttendanceResponse struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name,omitempty"`
	AttendanceDate     string          `json:"attendance_date"`
	ShiftID            *string         `json:"shift_id,omitempty"`
	AttendancePolicyID *string         `json:"attendance_policy_id,omitempty"`
	ClockIn            *string         `json:"clock_in,omitempty"`
	ClockOut           *string         `json:"clock_out,omitempty"`
	TotalHours         float64         `json:"total_hours"`
	BreakHours         float64         `json:"break_hours"`
	OvertimeHours      float64         `json:"overtime_hours"`
	OvertimeAmount     decimal.Decimal `json:"overtime_amount"`
	IsLate             bool            `json:"is_late"`
	IsEarlyDeparture   bool            `json:"is_early_departure"`
	IsAbsent           bool            `json:"is_absent"`
	IsHoliday          bool            `json:"is_holiday"`
	IsWeekend          bool            `json:"is_weekend"`
	Status             string          `json:"status"`
	StatusIsManual     bool            `json:"status_is_manual"`
	Source             string          `json:"source"`
	Notes              *string         `json:"notes,omitempty"`
}

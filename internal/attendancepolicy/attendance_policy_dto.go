package attendancepolicy

import "github.com/shopspring/decimal"

type CreateAttendancePolicyRequest struct {
	Name                string          `json:"name" binding:"required,max=100"`
	LateArrivalGrace    int             `json:"late_arrival_grace" binding:"min=0,max=240"`
	EarlyDepartureGrace int             `json:"early_departure_grace" binding:"min=0,max=240"`
	OvertimeRatePerHour decimal.Decimal `json:"overtime_rate_per_hour"`
}

type UpdateAttendancePolicyRequest struct {
	Name                string          `json:"name" binding:"required,max=100"`
	LateArrivalGrace    int             `json:"late_arrival_grace" binding:"min=0,max=240"`
	EarlyDepartureGrace int             `json:"early_departure_grace" binding:"min=0,max=240"`
	OvertimeRatePerHour decimal.Decimal `json:"overtime_rate_per_hour"`
	IsActive            *bool           `json:"is_active"`
}

type AttendancePolicyResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	Name                string          `json:"name"`
	LateArrivalGrace    int             `json:"late_arrival_grace"`
	EarlyDepartureGrace int             `json:"early_departure_grace"`
	OvertimeRatePerHour decimal.Decimal `json:"overtime_rate_per_hour"`
	IsActive            bool            `json:"is_active"`
}

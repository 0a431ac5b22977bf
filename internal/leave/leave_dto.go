package leave

import "github.com/shopspring/decimal"

type CreateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Code   string `json:"code" binding:"required,max=20"`
	IsPaid bool   `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Code     string `json:"code" binding:"required,max=20"`
	IsPaid   bool   `json:"is_paid"`
	IsActive *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	IsPaid    bool   `json:"is_paid"`
	IsActive  bool   `json:"is_active"`
}

type UpsertLeavePolicyRequest struct {
	LeaveTypeID         string          `json:"leave_type_id" binding:"required,uuid"`
	MaxDaysPerYear      decimal.Decimal `json:"max_days_per_year"`
	AllowCarryForward   bool            `json:"allow_carry_forward"`
	MaxCarryForwardDays decimal.Decimal `json:"max_carry_forward_days"`
}

type LeavePolicyResponse struct {
	ID                  string          `json:"id"`
	LeaveTypeID         string          `json:"leave_type_id"`
	LeaveTypeName       string          `json:"leave_type_name,omitempty"`
	MaxDaysPerYear      decimal.Decimal `json:"max_days_per_year"`
	AllowCarryForward   bool            `json:"allow_carry_forward"`
	MaxCarryForwardDays decimal.Decimal `json:"max_carry_forward_days"`
}

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=1000"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type GetLeavesFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   string  `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type AdjustBalanceRequest struct {
	Adjustment decimal.Decimal `json:"adjustment"`
	Reason     string          `json:"reason" binding:"required"`
}

type LeaveBalanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	LeaveTypeID      string          `json:"leave_type_id"`
	LeaveTypeName    string          `json:"leave_type_name,omitempty"`
	Year             int             `json:"year"`
	AllocatedDays    decimal.Decimal `json:"allocated_days"`
	CarriedForward   decimal.Decimal `json:"carried_forward"`
	ManualAdjustment decimal.Decimal `json:"manual_adjustment"`
	UsedDays         decimal.Decimal `json:"used_days"`
	RemainingDays    decimal.Decimal `json:"remaining_days"`
}

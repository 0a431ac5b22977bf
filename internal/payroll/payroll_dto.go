package payroll

import (
	"go-hrm/internal/employeesalary"

	"github.com/shopspring/decimal"
)

type CreatePayrollRunRequest struct {
	PayPeriodStart string `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string `json:"pay_period_end" binding:"required"`
}

type GetPayrollRunsFilterRequest struct {
	Status string `form:"status"`
}

type PayrollRunResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Reference       string          `json:"reference"`
	PayPeriodStart  string          `json:"pay_period_start"`
	PayPeriodEnd    string          `json:"pay_period_end"`
	Status          string          `json:"status"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	EmployeeCount   int             `json:"employee_count"`
	ProcessedAt     *string         `json:"processed_at,omitempty"`
	CreatedBy       string          `json:"created_by"`
}

type PayrollEntryResponse struct {
	ID                   string                         `json:"id"`
	PayrollRunID         string                         `json:"payroll_run_id"`
	EmployeeID           string                         `json:"employee_id"`
	EmployeeSalaryID     *string                        `json:"employee_salary_id,omitempty"`
	EmployeeNumber       string                         `json:"employee_number"`
	EmployeeName         string                         `json:"employee_name"`
	BasicSalary          decimal.Decimal                `json:"basic_salary"`
	ComponentEarnings    decimal.Decimal                `json:"component_earnings"`
	TotalEarnings        decimal.Decimal                `json:"total_earnings"`
	TotalDeductions      decimal.Decimal                `json:"total_deductions"`
	GrossPay             decimal.Decimal                `json:"gross_pay"`
	NetPay               decimal.Decimal                `json:"net_pay"`
	WorkingDays          int                            `json:"working_days"`
	PresentDays          int                            `json:"present_days"`
	HalfDays             int                            `json:"half_days"`
	HolidayDays          int                            `json:"holiday_days"`
	LeaveDays            int                            `json:"leave_days"`
	PaidLeaveDays        int                            `json:"paid_leave_days"`
	UnpaidLeaveDays      int                            `json:"unpaid_leave_days"`
	AbsentDays           int                            `json:"absent_days"`
	UnpaidLeaveDaysTotal decimal.Decimal                `json:"unpaid_leave_days_total"`
	OvertimeHours        decimal.Decimal                `json:"overtime_hours"`
	OvertimeAmount       decimal.Decimal                `json:"overtime_amount"`
	PerDaySalary         decimal.Decimal                `json:"per_day_salary"`
	UnpaidLeaveDeduction decimal.Decimal                `json:"unpaid_leave_deduction"`
	Earnings             []employeesalary.ComponentLine `json:"earnings"`
	Deductions           []employeesalary.ComponentLine `json:"deductions"`
	CreatedAt            string                         `json:"created_at"`
}

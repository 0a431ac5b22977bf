package payroll

import (
	"time"

	"go-hrm/internal/employeesalary"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusDraft      = "draft"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

type PayrollRun struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_payroll_runs_company_status;uniqueIndex:uq_payroll_runs_company_reference"`
	Reference       string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_payroll_runs_company_reference"`
	PayPeriodStart  time.Time       `gorm:"type:date;not null"`
	PayPeriodEnd    time.Time       `gorm:"type:date;not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'draft';index:idx_payroll_runs_company_status"`
	TotalGross      decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TotalNet        decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	EmployeeCount   int             `gorm:"not null;default:0"`
	ProcessedAt     *time.Time
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollEntry is the pay snapshot of one employee in one run. Rows are
// written once and never updated; a later period gets a new run.
type PayrollEntry struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayrollRunID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_entries_run_employee"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_entries_run_employee;index"`
	EmployeeSalaryID     *uuid.UUID      `gorm:"type:uuid"`
	EmployeeNumber       string          `gorm:"type:varchar(30)"`
	EmployeeName         string          `gorm:"type:varchar(150)"`
	BasicSalary          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ComponentEarnings    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalEarnings        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GrossPay             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetPay               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	WorkingDays          int             `gorm:"not null"`
	PresentDays          int             `gorm:"not null"`
	HalfDays             int             `gorm:"not null"`
	HolidayDays          int             `gorm:"not null"`
	LeaveDays            int             `gorm:"not null"`
	PaidLeaveDays        int             `gorm:"not null"`
	UnpaidLeaveDays      int             `gorm:"not null"`
	AbsentDays           int             `gorm:"not null"`
	UnpaidLeaveDaysTotal decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	OvertimeHours        decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	OvertimeAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PerDaySalary         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UnpaidLeaveDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	EarningsBreakdown   datatypes.JSONSlice[employeesalary.ComponentLine] `gorm:"column:earnings_breakdown"`
	DeductionsBreakdown datatypes.JSONSlice[employeesalary.ComponentLine] `gorm:"column:deductions_breakdown"`

	CreatedAt time.Time
}

func (PayrollEntry) TableName() string {
	return "payroll_entries"
}

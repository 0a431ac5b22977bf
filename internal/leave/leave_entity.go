package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// DefaultAllocatedDays applies when a leave type has no policy.
const DefaultAllocatedDays = 10

const dateLayout = "2006-01-02"

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_leave_types_company_code"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_types_company_code"`
	IsPaid    bool      `gorm:"not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type LeavePolicy struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_leave_policies_company_type"`
	LeaveTypeID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policies_company_type"`
	MaxDaysPerYear      decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	AllowCarryForward   bool            `gorm:"not null"`
	MaxCarryForwardDays decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	LeaveType           *LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

// AllocatedDays is what a fresh balance starts with.
func (p *LeavePolicy) AllocatedDays() decimal.Decimal {
	if p == nil || !p.MaxDaysPerYear.IsPositive() {
		return decimal.NewFromInt(DefaultAllocatedDays)
	}
	return p.MaxDaysPerYear
}

type LeaveApplication struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_applications_company_status"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_applications_employee_dates"`
	LeaveTypeID     uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate       time.Time  `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	EndDate         time.Time  `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	TotalDays       int        `gorm:"not null"`
	Reason          string     `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(20);not null;index:idx_leave_applications_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LeaveType       *LeaveType   `gorm:"foreignKey:LeaveTypeID;references:ID"`
	Employee        *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// CanTransitionTo allows pending -> approved | rejected | cancelled only.
func (l *LeaveApplication) CanTransitionTo(target string) bool {
	if l.Status != StatusPending {
		return false
	}
	switch target {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// LeaveBalance is the yearly ledger of one employee and leave type.
type LeaveBalance struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	LeaveTypeID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	Year             int             `gorm:"not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	AllocatedDays    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CarriedForward   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	ManualAdjustment decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	UsedDays         decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	RemainingDays    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LeaveType        *LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Recalculate keeps remaining = allocated + carried + adjustment - used.
func (b *LeaveBalance) Recalculate() {
	b.RemainingDays = b.AllocatedDays.
		Add(b.CarriedForward).
		Add(b.ManualAdjustment).
		Sub(b.UsedDays).
		Round(2)
}

func (b *LeaveBalance) BeforeSave(tx *gorm.DB) error {
	b.Recalculate()
	return nil
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid"`
	FullName  string    `gorm:"column:full_name"`
	IsActive  bool
}

func (EmployeeRef) TableName() string {
	return "employees"
}

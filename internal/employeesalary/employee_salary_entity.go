package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// EmployeeSalary is one salary definition of an employee. At most one per
// employee is active; the service keeps that true.
type EmployeeSalary struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID                   `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_salary_effective"`
	BasicSalary   decimal.Decimal             `gorm:"type:numeric(14,2);not null"`
	ComponentIDs  datatypes.JSONSlice[string] `gorm:"column:component_ids"`
	IsActive      bool                        `gorm:"not null;index"`
	EffectiveDate time.Time                   `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective"`
	EmployeeName  string                      `gorm:"->;-:migration"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}

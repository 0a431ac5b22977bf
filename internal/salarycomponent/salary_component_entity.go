package salarycomponent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeEarning   = "earning"
	TypeDeduction = "deduction"

	CalculationFixed      = "fixed"
	CalculationPercentage = "percentage"
)

var hundred = decimal.NewFromInt(100)

type SalaryComponent struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_salary_components_company_code"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Code              string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_salary_components_company_code"`
	Type              string          `gorm:"type:varchar(20);not null"`
	CalculationType   string          `gorm:"type:varchar(20);not null"`
	DefaultAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PercentageOfBasic decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	IsActive          bool            `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

// CalculateAmount returns the component's amount for the given basic salary,
// rounded to 2 decimal places.
func (c SalaryComponent) CalculateAmount(basic decimal.Decimal) decimal.Decimal {
	if c.CalculationType == CalculationPercentage {
		return basic.Mul(c.PercentageOfBasic).Div(hundred).Round(2)
	}
	return c.DefaultAmount.Round(2)
}

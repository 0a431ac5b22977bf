package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_employees_company_number;uniqueIndex:uq_employees_company_email"`
	EmployeeNumber     string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_employees_company_number"`
	FullName           string     `gorm:"type:varchar(150);not null"`
	Email              string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_company_email"`
	HireDate           time.Time  `gorm:"type:date;not null"`
	IsActive           bool       `gorm:"not null"`
	ShiftID            *uuid.UUID `gorm:"type:uuid"`
	AttendancePolicyID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Employee) TableName() string {
	return "employees"
}

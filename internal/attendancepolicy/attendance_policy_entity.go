package attendancepolicy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AttendancePolicy struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_attendance_policies_company_name"`
	Name                string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_attendance_policies_company_name"`
	LateArrivalGrace    int             `gorm:"not null"`
	EarlyDepartureGrace int             `gorm:"not null"`
	OvertimeRatePerHour decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsActive            bool            `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (AttendancePolicy) TableName() string {
	return "attendance_policies"
}

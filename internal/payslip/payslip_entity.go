package payslip

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusGenerated  = "generated"
	StatusSent       = "sent"
	StatusDownloaded = "downloaded"
)

type Payslip struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payslips_company_number"`
	PayrollEntryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payslips_entry"`
	PayrollRunID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PayslipNumber  string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_payslips_company_number"`
	FilePath       string    `gorm:"type:varchar(255);not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'generated'"`
	GeneratedBy    *uuid.UUID `gorm:"type:uuid"`
	GeneratedAt    time.Time
	SentAt         *time.Time
	DownloadedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

// CanTransitionTo reports whether the payslip may move to target. A
// download is always allowed and may repeat; sending only happens once
// and never after the employee already downloaded it.
func (p *Payslip) CanTransitionTo(target string) bool {
	switch target {
	case StatusDownloaded:
		return true
	case StatusSent:
		return p.Status == StatusGenerated
	}
	return false
}

package attendance

import (
	"time"

	"go-hrm/internal/shared/timeofday"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusHalfDay = "half_day"
	StatusAbsent  = "absent"
	StatusHoliday = "holiday"
	StatusOnLeave = "on_leave"
)

const (
	SourceSelf        = "self"
	SourceRegularized = "regularized"
	SourceLeave       = "leave"
	SourceManual      = "manual"
)

const dateLayout = "2006-01-02"

// AttendanceRecord is one employee's day. Hours and flags are derived by
// Finalize; only clock times, holiday flag and manual status are inputs.
type AttendanceRecord struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate     time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date;index"`
	ShiftID            *uuid.UUID       `gorm:"type:uuid"`
	AttendancePolicyID *uuid.UUID       `gorm:"type:uuid"`
	ClockIn            *timeofday.Clock `gorm:"type:varchar(5)"`
	ClockOut           *timeofday.Clock `gorm:"type:varchar(5)"`
	TotalHours         float64          `gorm:"type:numeric(5,2);not null"`
	BreakHours         float64          `gorm:"type:numeric(5,2);not null"`
	OvertimeHours      float64          `gorm:"type:numeric(5,2);not null"`
	OvertimeAmount     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	IsLate             bool             `gorm:"not null"`
	IsEarlyDeparture   bool             `gorm:"not null"`
	IsAbsent           bool             `gorm:"not null"`
	IsHoliday          bool             `gorm:"not null"`
	IsWeekend          bool             `gorm:"not null"`
	Status             string           `gorm:"type:varchar(20);not null;index"`
	StatusIsManual     bool             `gorm:"not null"`
	Source             string           `gorm:"type:varchar(30);not null"`
	Notes              *string          `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Employee           *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// SetClockTimes replaces the clock times. A change unfreezes the status so
// the next Finalize derives it again.
func (r *AttendanceRecord) SetClockTimes(in, out *timeofday.Clock) {
	if !sameClock(r.ClockIn, in) || !sameClock(r.ClockOut, out) {
		r.StatusIsManual = false
	}
	r.ClockIn = in
	r.ClockOut = out
}

// SetManualStatus pins status so Finalize leaves it alone.
func (r *AttendanceRecord) SetManualStatus(status string) {
	r.Status = status
	r.StatusIsManual = true
	r.IsAbsent = status == StatusAbsent
	if status == StatusHoliday {
		r.IsHoliday = true
	}
}

func sameClock(a, b *timeofday.Clock) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Minutes() == b.Minutes()
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EmployeeRef reads the employee's default shift and policy assignment.
type EmployeeRef struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID  `gorm:"type:uuid"`
	FullName           string     `gorm:"column:full_name"`
	ShiftID            *uuid.UUID `gorm:"type:uuid"`
	AttendancePolicyID *uuid.UUID `gorm:"type:uuid"`
	IsActive           bool
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusHalfDay, StatusAbsent, StatusHoliday, StatusOnLeave:
		return true
	default:
		return false
	}
}

package shift

import (
	"math"
	"time"

	"go-hrm/internal/shared/timeofday"

	"github.com/google/uuid"
)

const DefaultStandardHours = 8.0

type Shift struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uq_shifts_company_name"`
	Name           string           `gorm:"type:varchar(100);not null;uniqueIndex:uq_shifts_company_name"`
	StartTime      timeofday.Clock  `gorm:"type:varchar(5);not null"`
	EndTime        timeofday.Clock  `gorm:"type:varchar(5);not null"`
	BreakStartTime *timeofday.Clock `gorm:"type:varchar(5)"`
	BreakEndTime   *timeofday.Clock `gorm:"type:varchar(5)"`
	BreakDuration  int              `gorm:"not null"`
	GracePeriod    int              `gorm:"not null"`
	IsNightShift   bool             `gorm:"not null"`
	IsActive       bool             `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Shift) TableName() string {
	return "shifts"
}

// Break returns the configured break window, or nil when either end is unset.
func (s *Shift) Break() *BreakWindow {
	if s == nil || s.BreakStartTime == nil || s.BreakEndTime == nil {
		return nil
	}
	return &BreakWindow{
		Start:    *s.BreakStartTime,
		End:      *s.BreakEndTime,
		Duration: s.BreakDuration,
	}
}

// WorkingHours is the scheduled length minus break_duration, never negative.
func (s *Shift) WorkingHours() float64 {
	minutes := s.EndTime.Minutes() - s.StartTime.Minutes()
	if s.IsNightShift && s.EndTime.Before(s.StartTime) {
		minutes += timeofday.MinutesPerDay
	}
	minutes -= s.BreakDuration
	if minutes <= 0 {
		return 0
	}
	return RoundHours(float64(minutes) / 60)
}

// StandardHours falls back to an eight hour day when no shift applies.
func StandardHours(s *Shift) float64 {
	if s != nil {
		if h := s.WorkingHours(); h > 0 {
			return h
		}
	}
	return DefaultStandardHours
}

func (s *Shift) crossesMidnight() bool {
	return s.EndTime.Before(s.StartTime)
}

// OnTimeline places t on the shift's own timeline in minutes. For a shift
// that crosses midnight, times in the first half of the off-duty gap belong
// to the next day; everything else stays on day 0.
func (s *Shift) OnTimeline(t timeofday.Clock) int {
	if !s.crossesMidnight() {
		return t.Minutes()
	}
	cutoff := (s.EndTime.Minutes() + s.StartTime.Minutes()) / 2
	if t.Minutes() < cutoff {
		return t.Minutes() + timeofday.MinutesPerDay
	}
	return t.Minutes()
}

func (s *Shift) StartOnTimeline() int { return s.OnTimeline(s.StartTime) }

func (s *Shift) EndOnTimeline() int { return s.OnTimeline(s.EndTime) }

func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}

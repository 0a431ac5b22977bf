package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaveStamper marks days as on_leave inside a transaction owned by the
// caller, so leave approval and its attendance side effects commit together.
type LeaveStamper struct {
	repo Repository
}

func NewLeaveStamper(repo Repository) *LeaveStamper {
	return &LeaveStamper{repo: repo}
}

// StampOnLeave upserts an on_leave record for each day. Existing records are
// overwritten, clock times dropped and the status pinned.
func (s *LeaveStamper) StampOnLeave(ctx context.Context, tx *sql.Tx, companyID, employeeID string, days []time.Time, note string) error {
	qtx := s.repo.WithTx(tx)

	for _, day := range days {
		rec, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return fmt.Errorf("find attendance %s: %w", day.Format(dateLayout), err)
		}
		if isNew {
			rec = &AttendanceRecord{
				ID:             uuid.New(),
				CompanyID:      uuid.MustParse(companyID),
				EmployeeID:     uuid.MustParse(employeeID),
				AttendanceDate: day,
			}
		}

		n := note
		rec.ClockIn = nil
		rec.ClockOut = nil
		rec.TotalHours = 0
		rec.BreakHours = 0
		rec.OvertimeHours = 0
		rec.OvertimeAmount = decimal.Zero
		rec.IsLate = false
		rec.IsEarlyDeparture = false
		rec.IsWeekend = isWeekend(day)
		rec.SetManualStatus(StatusOnLeave)
		rec.Source = SourceLeave
		rec.Notes = &n

		if isNew {
			err = qtx.Create(ctx, rec)
		} else {
			err = qtx.Update(ctx, rec)
		}
		if err != nil {
			return fmt.Errorf("stamp leave %s: %w", day.Format(dateLayout), err)
		}
	}
	return nil
}

package attendance

import (
	"math"

	"go-hrm/internal/attendancepolicy"
	"go-hrm/internal/shift"

	"github.com/shopspring/decimal"
)

// Finalize recomputes every derived field of rec from its clock times, the
// linked shift and the linked policy. sh and policy may be nil.
func Finalize(rec *AttendanceRecord, sh *shift.Shift, policy *attendancepolicy.AttendancePolicy) {
	worked := shift.ResolveWorkedTimeFor(sh, rec.ClockIn, rec.ClockOut)
	rec.TotalHours = worked.TotalHours
	rec.BreakHours = worked.BreakHours

	standard := shift.StandardHours(sh)

	rec.OvertimeHours = math.Max(0, shift.RoundHours(rec.TotalHours-standard))
	rec.OvertimeAmount = decimal.Zero
	if rec.OvertimeHours > 0 && policy != nil {
		rec.OvertimeAmount = decimal.NewFromFloat(rec.OvertimeHours).
			Mul(policy.OvertimeRatePerHour).
			Round(2)
	}

	rec.IsLate = false
	rec.IsEarlyDeparture = false
	if sh != nil && rec.ClockIn != nil && rec.ClockOut != nil {
		lateGrace := sh.GracePeriod
		earlyGrace := 0
		if policy != nil {
			lateGrace = policy.LateArrivalGrace
			earlyGrace = policy.EarlyDepartureGrace
		}

		in := sh.OnTimeline(*rec.ClockIn)
		out := in + worked.TotalMinutes
		rec.IsLate = in > sh.StartOnTimeline()+lateGrace
		rec.IsEarlyDeparture = out < sh.EndOnTimeline()-earlyGrace
	}

	if !rec.StatusIsManual {
		rec.Status = deriveStatus(rec.IsHoliday, rec.TotalHours, standard)
	}
	rec.IsAbsent = rec.Status == StatusAbsent
	rec.IsWeekend = isWeekend(rec.AttendanceDate)
}

func deriveStatus(isHoliday bool, totalHours, standard float64) string {
	switch {
	case isHoliday:
		return StatusHoliday
	case totalHours >= standard/2:
		return StatusPresent
	case totalHours > 0:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

package payroll

import (
	"time"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employeesalary"
	"go-hrm/internal/leave"

	"github.com/shopspring/decimal"
)

var half = decimal.RequireFromString("0.5")

// CountWorkingDays is the number of Monday–Friday days in [start, end],
// regardless of any attendance recorded.
func CountWorkingDays(start, end time.Time) int {
	return leave.CountWeekdays(start, end)
}

type AttendanceSummary struct {
	PresentDays    int
	HalfDays       int
	AbsentDays     int
	HolidayDays    int
	OvertimeHours  decimal.Decimal
	OvertimeAmount decimal.Decimal
}

// SummarizeAttendance counts records by status. Holidays count as present
// as well as being reported on their own.
func SummarizeAttendance(records []attendance.AttendanceRecord) AttendanceSummary {
	s := AttendanceSummary{OvertimeHours: decimal.Zero, OvertimeAmount: decimal.Zero}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusHoliday:
			s.PresentDays++
			s.HolidayDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
		s.OvertimeHours = s.OvertimeHours.Add(decimal.NewFromFloat(r.OvertimeHours))
		s.OvertimeAmount = s.OvertimeAmount.Add(r.OvertimeAmount)
	}
	s.OvertimeHours = s.OvertimeHours.Round(2)
	s.OvertimeAmount = s.OvertimeAmount.Round(2)
	return s
}

type LeaveSummary struct {
	PaidDays   int
	UnpaidDays int
}

func (l LeaveSummary) Total() int { return l.PaidDays + l.UnpaidDays }

// SumLeaveDays counts the weekdays of approved applications that fall
// inside [start, end]. Applications without a loaded leave type count as
// paid.
func SumLeaveDays(apps []leave.LeaveApplication, start, end time.Time) LeaveSummary {
	var s LeaveSummary
	for _, a := range apps {
		if a.Status != leave.StatusApproved {
			continue
		}
		from, to := a.StartDate, a.EndDate
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		if from.After(to) {
			continue
		}
		days := leave.CountWeekdays(from, to)
		if a.LeaveType != nil && !a.LeaveType.IsPaid {
			s.UnpaidDays += days
			continue
		}
		s.PaidDays += days
	}
	return s
}

type EntryInput struct {
	Salary      employeesalary.Breakdown
	Attendance  AttendanceSummary
	Leave       LeaveSummary
	WorkingDays int
}

type Calculation struct {
	BasicSalary          decimal.Decimal
	ComponentEarnings    decimal.Decimal
	TotalEarnings        decimal.Decimal
	TotalDeductions      decimal.Decimal
	UnpaidLeaveDaysTotal decimal.Decimal
	PerDaySalary         decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	OvertimeHours        decimal.Decimal
	OvertimeAmount       decimal.Decimal
	GrossPay             decimal.Decimal
	NetPay               decimal.Decimal
}

// ComputeEntry derives the pay figures of one employee. The deduction is
// taken from the unrounded per-day rate; only stored values are rounded.
func ComputeEntry(in EntryInput) Calculation {
	basic := in.Salary.BasicSalary

	unpaidTotal := decimal.NewFromInt(int64(in.Leave.UnpaidDays)).
		Add(decimal.NewFromInt(int64(in.Attendance.AbsentDays))).
		Add(decimal.NewFromInt(int64(in.Attendance.HalfDays)).Mul(half))

	perDay := decimal.Zero
	deduction := decimal.Zero
	if in.WorkingDays > 0 {
		wd := decimal.NewFromInt(int64(in.WorkingDays))
		perDay = basic.Div(wd)
		deduction = basic.Mul(unpaidTotal).Div(wd)
	}
	deduction = deduction.Round(2)

	gross := in.Salary.TotalEarnings.Sub(deduction).Add(in.Attendance.OvertimeAmount).Round(2)
	net := gross.Sub(in.Salary.TotalDeductions).Round(2)

	return Calculation{
		BasicSalary:          basic,
		ComponentEarnings:    in.Salary.TotalEarnings.Sub(basic).Round(2),
		TotalEarnings:        in.Salary.TotalEarnings.Round(2),
		TotalDeductions:      in.Salary.TotalDeductions.Round(2),
		UnpaidLeaveDaysTotal: unpaidTotal,
		PerDaySalary:         perDay.Round(2),
		UnpaidLeaveDeduction: deduction,
		OvertimeHours:        in.Attendance.OvertimeHours,
		OvertimeAmount:       in.Attendance.OvertimeAmount,
		GrossPay:             gross,
		NetPay:               net,
	}
}

type Totals struct {
	TotalGross      decimal.Decimal
	TotalNet        decimal.Decimal
	TotalDeductions decimal.Decimal
	EmployeeCount   int
}

func CalculateTotals(entries []PayrollEntry) Totals {
	t := Totals{TotalGross: decimal.Zero, TotalNet: decimal.Zero, TotalDeductions: decimal.Zero}
	for _, e := range entries {
		t.TotalGross = t.TotalGross.Add(e.GrossPay)
		t.TotalNet = t.TotalNet.Add(e.NetPay)
		t.TotalDeductions = t.TotalDeductions.Add(e.TotalDeductions)
	}
	t.EmployeeCount = len(entries)
	return t
}

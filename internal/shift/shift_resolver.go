package shift

import "go-hrm/internal/shared/timeofday"

type BreakWindow struct {
	Start    timeofday.Clock
	End      timeofday.Clock
	Duration int
}

// WorkedTime is the result of resolving a clock-in/clock-out pair.
type WorkedTime struct {
	TotalMinutes   int
	BreakMinutes   int
	WorkingMinutes int
	TotalHours     float64
	BreakHours     float64
}

// ResolveWorkedTime computes minutes worked between in and out net of break.
// out earlier than in means the employee left after midnight.
//
// Break deduction, first match wins:
//
//	in <= bs && out >= be           -> configured break duration
//	in <= bs && bs < out <= be      -> out - bs
//	bs < in < be && be <= out       -> be - in
//	bs < in && out < be             -> 0
//	otherwise                       -> 0
func ResolveWorkedTime(in, out timeofday.Clock, brk *BreakWindow) WorkedTime {
	inMin := in.Minutes()
	outMin := out.Minutes()
	crossed := false
	if outMin < inMin {
		outMin += timeofday.MinutesPerDay
		crossed = true
	}
	total := outMin - inMin

	breakMin := 0
	if brk != nil {
		bs := brk.Start.Minutes()
		be := brk.End.Minutes()
		if be < bs {
			be += timeofday.MinutesPerDay
		}
		// A break earlier than clock-in on an overnight shift is the one
		// after midnight.
		if crossed && bs < inMin {
			bs += timeofday.MinutesPerDay
			be += timeofday.MinutesPerDay
		}
		breakMin = breakDeduction(inMin, outMin, bs, be, brk.Duration)
	}

	working := total - breakMin
	if working < 0 {
		working = 0
	}

	return WorkedTime{
		TotalMinutes:   total,
		BreakMinutes:   breakMin,
		WorkingMinutes: working,
		TotalHours:     RoundHours(float64(working) / 60),
		BreakHours:     RoundHours(float64(breakMin) / 60),
	}
}

func breakDeduction(in, out, bs, be, duration int) int {
	switch {
	case in <= bs && out >= be:
		return duration
	case in <= bs && bs < out && out <= be:
		return out - bs
	case bs < in && in < be && be <= out:
		return be - in
	case bs < in && out < be:
		return 0
	default:
		return 0
	}
}

// ResolveWorkedTimeFor resolves against a shift's break window. A missing
// clock time yields zero hours; a nil shift has no break.
func ResolveWorkedTimeFor(s *Shift, in, out *timeofday.Clock) WorkedTime {
	if in == nil || out == nil {
		return WorkedTime{}
	}
	return ResolveWorkedTime(*in, *out, s.Break())
}

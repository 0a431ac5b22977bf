package leave

import "time"

// Weekdays lists every Monday to Friday date in [start, end].
func Weekdays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		if isWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

func CountWeekdays(start, end time.Time) int {
	return len(Weekdays(start, end))
}

func isWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Package academic computes 1-based academic week numbers relative to a
// configured semester start date.
package academic

import "time"

// CurrentWeek returns the 1-based academic week that today falls in:
// floor(days since semester start / 7) + 1. Dates before the semester start
// clamp to week 1; that is a defined edge-case policy, not an error.
func CurrentWeek(semesterStart, today time.Time) int {
	start := truncateToDay(semesterStart)
	now := truncateToDay(today)

	days := int(now.Sub(start).Hours() / 24)
	week := days/7 + 1
	if week < 1 {
		return 1
	}
	return week
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

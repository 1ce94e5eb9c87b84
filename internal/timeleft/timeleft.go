// Package timeleft computes how much of a calendar window remains:
// the rest of today, this week, this month, this year, or a life of a
// given expectancy. Pure time arithmetic, no clock ownership.
package timeleft

import "time"

// Span is one calendar window measured against a reference instant.
type Span struct {
	Remaining time.Duration
	Total     time.Duration
	Elapsed   float64 // fraction in [0, 1]
}

func newSpan(now, start, end time.Time) Span {
	total := end.Sub(start)
	remaining := end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > total {
		remaining = total
	}
	elapsed := 0.0
	if total > 0 {
		elapsed = 1 - float64(remaining)/float64(total)
	}
	return Span{Remaining: remaining, Total: total, Elapsed: elapsed}
}

// Today returns the remainder of the current calendar day.
func Today(now time.Time) Span {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return newSpan(now, start, start.AddDate(0, 0, 1))
}

// Week returns the remainder of the current week. weekStart picks the
// day the week begins on (typically Monday or Sunday).
func Week(now time.Time, weekStart time.Weekday) Span {
	back := (int(now.Weekday()) - int(weekStart) + 7) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := day.AddDate(0, 0, -back)
	return newSpan(now, start, start.AddDate(0, 0, 7))
}

// Month returns the remainder of the current calendar month.
func Month(now time.Time) Span {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return newSpan(now, start, start.AddDate(0, 1, 0))
}

// Year returns the remainder of the current calendar year.
func Year(now time.Time) Span {
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	return newSpan(now, start, start.AddDate(1, 0, 0))
}

// Life returns the remainder of a life that began at birth and runs
// for expectancyYears. Clamped to empty once the expectancy passes.
func Life(now, birth time.Time, expectancyYears int) Span {
	return newSpan(now, birth, birth.AddDate(expectancyYears, 0, 0))
}

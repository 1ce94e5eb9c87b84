package focus

import (
	"sort"
	"time"
)

// DayGroup bundles the sessions started on one calendar day.
type DayGroup struct {
	Day      time.Time // midnight, local
	Sessions []Session
}

// GroupSessionsByDay groups sessions by the calendar day they started,
// most recent day first. Sessions within a day keep their input order.
func GroupSessionsByDay(sessions []Session) []DayGroup {
	byDay := make(map[time.Time][]Session)
	for _, s := range sessions {
		d := dayOf(s.StartedAt)
		byDay[d] = append(byDay[d], s)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for d, ss := range byDay {
		groups = append(groups, DayGroup{Day: d, Sessions: ss})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Day.After(groups[j].Day)
	})
	return groups
}

// FormatDayLabel renders a day header the way a history list shows it.
func FormatDayLabel(day time.Time) string {
	today := dayOf(time.Now())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Mon, Jan 2")
	}
}

// TotalMinutesForDay sums planned minutes of the completed sessions in
// a day group. Ended-early sessions do not count.
func TotalMinutesForDay(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		if s.WasCompleted {
			total += s.TotalMinutes
		}
	}
	return total
}

func dayOf(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package aggregate

import "focusflow/internal/core"

// HabitStreak counts consecutive days with a daily log, walking backward
// from today (or yesterday when today has no log yet), stopping at the
// first gap.
func HabitStreak(logs []core.DailyLog, today core.Date) int {
	days := make(map[string]bool, len(logs))
	for _, l := range logs {
		days[l.Date.Key()] = true
	}
	return streakFrom(days, today)
}

// DaysRemaining returns whole days until the goal's end date, never
// negative. Goals without an end date report zero.
func DaysRemaining(g core.Goal, today core.Date) int {
	if g.EndDate.IsEmpty() {
		return 0
	}
	days := int(g.EndDate.Sub(today.Time).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

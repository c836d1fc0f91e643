package aggregate

import (
	"sort"
	"time"

	"focusflow/internal/core"
)

// UpcomingExpense is a projected occurrence of a recurring expense.
type UpcomingExpense struct {
	Expense core.Expense
	Due     core.Date
}

// NextOccurrence returns the first occurrence of a recurring rule strictly
// after the given day, anchored at the rule's start date. Monthly and yearly
// rules clamp the target day to the last day of shorter months.
func NextOccurrence(every core.Repeat, start core.Date, after core.Date) core.Date {
	if start.After(after.Time) {
		return start
	}
	switch every {
	case core.RepeatDaily:
		return after.AddDays(1)
	case core.RepeatWeekly:
		d := start
		for !d.After(after.Time) {
			d = d.AddDays(7)
		}
		return d
	case core.RepeatMonthly:
		y, m := after.Year(), after.Month()
		for {
			d := monthlyOccurrence(y, m, start.Day())
			if d.After(after.Time) {
				return d
			}
			m++
			if m > 12 {
				m = 1
				y++
			}
		}
	case core.RepeatYearly:
		for y := after.Year(); ; y++ {
			d := monthlyOccurrence(y, start.Month(), start.Day())
			if d.After(after.Time) {
				return d
			}
		}
	default:
		return core.Date{}
	}
}

// monthlyOccurrence places the target day within a month, clamping to the
// month's last day when the target day does not exist (e.g. the 31st in
// February).
func monthlyOccurrence(year, month, day int) core.Date {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return core.NewDate(year, month, day)
}

// UpcomingRecurring projects every recurring expense forward from the given
// day and returns the occurrences falling within the horizon, sorted by due
// date; ties keep input order.
func UpcomingRecurring(expenses []core.Expense, from core.Date, horizonDays int) []UpcomingExpense {
	limit := from.AddDays(horizonDays)
	var out []UpcomingExpense
	for _, e := range expenses {
		if !e.Recurring || e.RepeatsEvery == core.RepeatNone {
			continue
		}
		due := NextOccurrence(e.RepeatsEvery, e.Date, from)
		if due.IsEmpty() || due.After(limit.Time) {
			continue
		}
		out = append(out, UpcomingExpense{Expense: e, Due: due})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Due.Before(out[b].Due.Time)
	})
	return out
}

// Package aggregate turns raw fetched records into the summary statistics,
// series and streaks shown on dashboards. Every function here is pure and
// total: no I/O, no errors, missing optional fields count as zero, and the
// same input always yields the same output.
package aggregate

import "focusflow/internal/core"

// Window is an optional [start, end] calendar-date range. A nil bound is
// unbounded in that direction; both bounds are inclusive.
type Window struct {
	Start *core.Date
	End   *core.Date
}

// NewWindow builds a window from two dates. Zero dates become open bounds.
func NewWindow(start, end core.Date) Window {
	w := Window{}
	if !start.IsZero() {
		w.Start = &start
	}
	if !end.IsZero() {
		w.End = &end
	}
	return w
}

// Contains reports whether the day falls inside the window.
func (w Window) Contains(d core.Date) bool {
	if w.Start != nil && d.Before(w.Start.Time) {
		return false
	}
	if w.End != nil && d.After(w.End.Time) {
		return false
	}
	return true
}

// filter retains records whose day falls inside the window, preserving the
// input order.
func filter[T any](records []T, day func(T) core.Date, w Window) []T {
	if w.Start == nil && w.End == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if w.Contains(day(r)) {
			out = append(out, r)
		}
	}
	return out
}

func FilterExpenses(records []core.Expense, w Window) []core.Expense {
	return filter(records, func(e core.Expense) core.Date { return e.Date }, w)
}

func FilterIncomes(records []core.Income, w Window) []core.Income {
	return filter(records, func(i core.Income) core.Date { return i.Date }, w)
}

func FilterFoodEntries(records []core.FoodEntry, w Window) []core.FoodEntry {
	return filter(records, func(f core.FoodEntry) core.Date { return f.Date }, w)
}

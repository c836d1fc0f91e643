package aggregate

import (
	"testing"

	"focusflow/internal/core"
)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name  string
		every core.Repeat
		start core.Date
		after core.Date
		want  core.Date
	}{
		{"daily", core.RepeatDaily, core.NewDate(2025, 1, 1), core.NewDate(2025, 3, 10), core.NewDate(2025, 3, 11)},
		{"weekly", core.RepeatWeekly, core.NewDate(2025, 1, 6), core.NewDate(2025, 1, 20), core.NewDate(2025, 1, 27)},
		{"monthly", core.RepeatMonthly, core.NewDate(2025, 1, 15), core.NewDate(2025, 3, 15), core.NewDate(2025, 4, 15)},
		{"monthly clamps to month end", core.RepeatMonthly, core.NewDate(2025, 1, 31), core.NewDate(2025, 2, 1), core.NewDate(2025, 2, 28)},
		{"yearly", core.RepeatYearly, core.NewDate(2023, 6, 10), core.NewDate(2025, 6, 10), core.NewDate(2026, 6, 10)},
		{"start in the future", core.RepeatMonthly, core.NewDate(2025, 9, 1), core.NewDate(2025, 6, 1), core.NewDate(2025, 9, 1)},
	}
	for _, tc := range cases {
		got := NextOccurrence(tc.every, tc.start, tc.after)
		if !got.Equal(tc.want.Time) {
			t.Fatalf("%s: got %s want %s", tc.name, got.Key(), tc.want.Key())
		}
	}

	if got := NextOccurrence(core.RepeatNone, core.NewDate(2025, 1, 1), core.NewDate(2025, 2, 1)); !got.IsEmpty() {
		t.Fatalf("unknown interval must yield empty date, got %s", got.Key())
	}
}

func TestUpcomingRecurring(t *testing.T) {
	from := core.NewDate(2025, 6, 1)
	rent := core.Expense{
		Title: "rent", Amount: core.Money{Cents: 90000}, Category: core.CategoryHousing,
		Date: core.NewDate(2025, 1, 3), Recurring: true, RepeatsEvery: core.RepeatMonthly,
	}
	gym := core.Expense{
		Title: "gym", Amount: core.Money{Cents: 3000}, Category: core.CategoryHealth,
		Date: core.NewDate(2025, 1, 20), Recurring: true, RepeatsEvery: core.RepeatMonthly,
	}
	oneOff := core.Expense{
		Title: "cinema", Amount: core.Money{Cents: 1500}, Category: core.CategoryEntertainment,
		Date: core.NewDate(2025, 5, 30),
	}

	got := UpcomingRecurring([]core.Expense{gym, rent, oneOff}, from, 30)
	if len(got) != 2 {
		t.Fatalf("got %d upcoming want 2", len(got))
	}
	if got[0].Expense.Title != "rent" || got[0].Due.Key() != "2025-06-03" {
		t.Fatalf("first due wrong: %s on %s", got[0].Expense.Title, got[0].Due.Key())
	}
	if got[1].Expense.Title != "gym" || got[1].Due.Key() != "2025-06-20" {
		t.Fatalf("second due wrong: %s on %s", got[1].Expense.Title, got[1].Due.Key())
	}

	// Horizon excludes occurrences past the limit.
	if got := UpcomingRecurring([]core.Expense{rent}, from, 1); len(got) != 0 {
		t.Fatalf("horizon must exclude far occurrences, got %v", got)
	}
}

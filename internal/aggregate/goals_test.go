package aggregate

import (
	"testing"

	"focusflow/internal/core"
)

func TestHabitStreak(t *testing.T) {
	today := core.NewDate(2026, 3, 10)
	logAt := func(days ...core.Date) []core.DailyLog {
		logs := make([]core.DailyLog, len(days))
		for i, d := range days {
			logs[i] = core.DailyLog{Date: d}
		}
		return logs
	}

	tests := []struct {
		name string
		logs []core.DailyLog
		want int
	}{
		{
			name: "no logs",
			logs: nil,
			want: 0,
		},
		{
			name: "today and two days before",
			logs: logAt(today, today.AddDays(-1), today.AddDays(-2)),
			want: 3,
		},
		{
			name: "today not yet logged counts from yesterday",
			logs: logAt(today.AddDays(-1), today.AddDays(-2)),
			want: 2,
		},
		{
			name: "gap breaks the streak",
			logs: logAt(today, today.AddDays(-1), today.AddDays(-3)),
			want: 2,
		},
		{
			name: "duplicate logs on one day count once",
			logs: logAt(today, today, today.AddDays(-1)),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HabitStreak(tt.logs, today); got != tt.want {
				t.Errorf("HabitStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	today := core.NewDate(2026, 3, 10)

	tests := []struct {
		name string
		goal core.Goal
		want int
	}{
		{
			name: "twenty days out",
			goal: core.Goal{EndDate: core.NewDate(2026, 3, 30)},
			want: 20,
		},
		{
			name: "ends today",
			goal: core.Goal{EndDate: today},
			want: 0,
		},
		{
			name: "past deadline clamps to zero",
			goal: core.Goal{EndDate: core.NewDate(2026, 3, 1)},
			want: 0,
		},
		{
			name: "no end date",
			goal: core.Goal{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.goal, today); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}
